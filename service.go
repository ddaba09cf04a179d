package balance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FetchCriteria bounds a remote transaction query. A zero AccountID matches
// every account; From and To are inclusive.
type FetchCriteria struct {
	AccountID int
	From, To  time.Time
}

// Matches reports whether a transaction falls inside the criteria.
func (c FetchCriteria) Matches(t Transaction) bool {
	if c.AccountID != 0 && t.Account.ID != c.AccountID {
		return false
	}
	if !c.From.IsZero() && t.TransactionDate.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && t.TransactionDate.After(c.To) {
		return false
	}
	return true
}

// TransactionFields carries the caller-supplied fields of a new transaction.
// Identity and the createdAt/updatedAt stamps are assigned by the backend.
type TransactionFields struct {
	AccountID       int
	CategoryID      int
	Amount          decimal.Decimal
	TransactionDate time.Time
	Comment         *string
}

// TransactionService is the remote API boundary. The cache and the codecs
// depend only on the domain records it produces, never on transport details;
// results are handed to the cache after completion, not awaited inside it.
type TransactionService interface {
	Fetch(ctx context.Context, criteria FetchCriteria) ([]Transaction, error)
	Create(ctx context.Context, fields TransactionFields) (Transaction, error)
	Update(ctx context.Context, tx Transaction) (Transaction, error)
	Delete(ctx context.Context, id int) error
}

// CreateRequestBody builds the wire body of a create call: typed foreign keys
// mixed with the canonical text encodings for amount and date. An absent
// comment is omitted from the body.
func CreateRequestBody(fields TransactionFields) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("accountId", fields.AccountID)
	w.Append("categoryId", fields.CategoryID)
	w.Append("amount", EncodeDecimal(fields.Amount))
	w.Append("transactionDate", EncodeTimestamp(fields.TransactionDate))
	if fields.Comment != nil {
		w.Append("comment", *fields.Comment)
	}
	return w.MarshalJSON()
}

// UpdateRequestBody builds the wire body of an update call. The backend takes
// the flat field form, not the embedded snapshots, and expects a comment even
// when empty.
func UpdateRequestBody(tx Transaction) ([]byte, error) {
	comment := ""
	if tx.Comment != nil {
		comment = *tx.Comment
	}
	var w jsonObjectWriter
	w.Append("accountId", tx.Account.ID)
	w.Append("categoryId", tx.Category.ID)
	w.Append("amount", EncodeDecimal(tx.Amount))
	w.Append("transactionDate", EncodeTimestamp(tx.TransactionDate))
	w.Append("comment", comment)
	return w.MarshalJSON()
}
