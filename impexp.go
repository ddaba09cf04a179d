package balance

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// This file handles the CSV import/export format: a fixed 8-column,
// comma-delimited layout with an optional header row. It deliberately
// implements no quoting or escaping grammar; rows are single lines and fields
// carry no embedded commas. The format exists for user-supplied files, so
// import is best effort: bad rows are dropped and reported, never fatal.

// csvHeader is the canonical column order of the import/export format.
const csvHeader = "id,accountId,categoryId,amount,transactionDate,comment,createdAt,updatedAt"

const csvColumns = 8

// RowError records one rejected row of a CSV import.
type RowError struct {
	Line int // 1-based line number in the input
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e RowError) Unwrap() error { return e.Err }

// ParseCSVRow decodes a single comma-delimited row into a transaction.
//
// The row carries only foreign-key integers for the account and category, so
// the returned transaction embeds placeholder snapshots holding just the id;
// resolving the full objects is the caller's job. An empty comment column
// decodes as absent (nil), and stray quote characters in the comment are
// stripped rather than interpreted.
func ParseCSVRow(row string) (Transaction, error) {
	cols := strings.Split(row, ",")
	if len(cols) != csvColumns {
		return Transaction{}, fmt.Errorf("expected %d columns, got %d", csvColumns, len(cols))
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	id, err := strconv.Atoi(cols[0])
	if err != nil {
		return Transaction{}, fmt.Errorf("column id: %w", err)
	}
	accountID, err := strconv.Atoi(cols[1])
	if err != nil {
		return Transaction{}, fmt.Errorf("column accountId: %w", err)
	}
	categoryID, err := strconv.Atoi(cols[2])
	if err != nil {
		return Transaction{}, fmt.Errorf("column categoryId: %w", err)
	}
	amount, err := DecodeDecimal(cols[3])
	if err != nil {
		return Transaction{}, fmt.Errorf("column amount: %w", err)
	}
	transactionDate, err := DecodeTimestamp(cols[4])
	if err != nil {
		return Transaction{}, fmt.Errorf("column transactionDate: %w", err)
	}
	createdAt, err := DecodeTimestamp(cols[6])
	if err != nil {
		return Transaction{}, fmt.Errorf("column createdAt: %w", err)
	}
	updatedAt, err := DecodeTimestamp(cols[7])
	if err != nil {
		return Transaction{}, fmt.Errorf("column updatedAt: %w", err)
	}

	var comment *string
	if c := strings.ReplaceAll(cols[5], `"`, ""); c != "" {
		comment = &c
	}

	return Transaction{
		ID:              id,
		Account:         placeholderAccount(accountID),
		Category:        placeholderCategory(categoryID),
		Amount:          amount,
		TransactionDate: transactionDate,
		Comment:         comment,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

// placeholderAccount is the sentinel snapshot synthesized for CSV rows, which
// carry only the account's numeric id.
func placeholderAccount(id int) BankAccount {
	return BankAccount{ID: id, Name: "N/A", Currency: RUB}
}

// placeholderCategory is the sentinel snapshot synthesized for CSV rows.
func placeholderCategory(id int) Category {
	return Category{ID: id, Name: "N/A", Emoji: "❔", Direction: Outcome}
}

// ImportCSV parses transactions from the import format. A first row starting
// with the canonical column names is skipped as a header. Rows that fail to
// parse are dropped from the result and collected (with their line number)
// in the returned diagnostics, so a batch import yields everything it can.
func ImportCSV(text string) ([]Transaction, []RowError) {
	var txs []Transaction
	var skipped []RowError
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(line, "id,accountId") {
			continue
		}
		tx, err := ParseCSVRow(line)
		if err != nil {
			log.Printf("csv-import-skip line=%d err=%q", i+1, err)
			skipped = append(skipped, RowError{Line: i + 1, Err: err})
			continue
		}
		txs = append(txs, tx)
	}
	return txs, skipped
}

// ExportCSV writes transactions to w in the import format, header first.
// Embedded commas and quotes in comments would corrupt the unquoted format,
// so they are dropped on the way out.
func ExportCSV(w io.Writer, txs []Transaction) error {
	if _, err := fmt.Fprintln(w, csvHeader); err != nil {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	for _, t := range txs {
		comment := ""
		if t.Comment != nil {
			comment = strings.NewReplacer(",", " ", `"`, "").Replace(*t.Comment)
		}
		_, err := fmt.Fprintf(w, "%d,%d,%d,%s,%s,%s,%s,%s\n",
			t.ID,
			t.Account.ID,
			t.Category.ID,
			EncodeDecimal(t.Amount),
			EncodeTimestamp(t.TransactionDate),
			comment,
			EncodeTimestamp(t.CreatedAt),
			EncodeTimestamp(t.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFileWrite, err)
		}
	}
	return nil
}
