package balance

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single financial event: an amount moved on an account
// under a category at a point in time. Account and Category are embedded
// value snapshots taken at creation time.
type Transaction struct {
	ID              int
	Account         BankAccount
	Category        Category
	Amount          decimal.Decimal
	TransactionDate time.Time
	Comment         *string // nil when absent, which is distinct from empty
	CreatedAt       time.Time
	UpdatedAt       time.Time // bumped on every update
}

// Equal reports whether two transactions hold the same values.
func (t Transaction) Equal(o Transaction) bool {
	if t.ID != o.ID ||
		!t.Account.Equal(o.Account) ||
		t.Category != o.Category ||
		!t.Amount.Equal(o.Amount) ||
		!t.TransactionDate.Equal(o.TransactionDate) ||
		!t.CreatedAt.Equal(o.CreatedAt) ||
		!t.UpdatedAt.Equal(o.UpdatedAt) {
		return false
	}
	if (t.Comment == nil) != (o.Comment == nil) {
		return false
	}
	return t.Comment == nil || *t.Comment == *o.Comment
}

// Tree returns the transaction as an interchange tree: decimals as canonical
// strings, timestamps in the canonical fractional form, absent comment
// omitted entirely (not null).
func (t Transaction) Tree() *Object {
	obj := NewObject().
		Set("id", Int(t.ID)).
		Set("account", t.Account.Tree()).
		Set("category", t.Category.Tree()).
		Set("amount", Text(EncodeDecimal(t.Amount))).
		Set("transactionDate", Text(EncodeTimestamp(t.TransactionDate)))
	if t.Comment != nil {
		obj.Set("comment", Text(*t.Comment))
	}
	obj.Set("createdAt", Text(EncodeTimestamp(t.CreatedAt))).
		Set("updatedAt", Text(EncodeTimestamp(t.UpdatedAt)))
	return obj
}

// MarshalJSON renders the transaction through its interchange tree, so the
// typed and untyped paths agree byte for byte.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return t.Tree().MarshalJSON()
}

// DecodeTransactionTree decodes a transaction from an interchange tree. On
// any missing required key or kind mismatch it fails with a FieldError naming
// the offending field path, nested fields included ("account.balance").
func DecodeTransactionTree(v Value) (Transaction, error) {
	obj, ok := v.(*Object)
	if !ok {
		return Transaction{}, &FieldError{Path: "", Err: fmt.Errorf("expected an object, got %T", v)}
	}
	id, err := obj.intAt("", "id")
	if err != nil {
		return Transaction{}, err
	}
	accountTree, err := obj.objectAt("", "account")
	if err != nil {
		return Transaction{}, err
	}
	account, err := decodeBankAccount(accountTree, "account")
	if err != nil {
		return Transaction{}, err
	}
	categoryTree, err := obj.objectAt("", "category")
	if err != nil {
		return Transaction{}, err
	}
	category, err := decodeCategory(categoryTree, "category")
	if err != nil {
		return Transaction{}, err
	}
	amount, err := obj.decimalAt("", "amount")
	if err != nil {
		return Transaction{}, err
	}
	transactionDate, err := obj.timeAt("", "transactionDate")
	if err != nil {
		return Transaction{}, err
	}
	comment, err := obj.optionalTextAt("", "comment")
	if err != nil {
		return Transaction{}, err
	}
	createdAt, err := obj.timeAt("", "createdAt")
	if err != nil {
		return Transaction{}, err
	}
	updatedAt, err := obj.timeAt("", "updatedAt")
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:              id,
		Account:         account,
		Category:        category,
		Amount:          amount,
		TransactionDate: transactionDate,
		Comment:         comment,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

// ParseTransaction is the lenient try-parse boundary over
// DecodeTransactionTree: it returns nil on any structural failure instead of
// an error. It exists for callers iterating heterogeneous arrays, where one
// corrupt record must not abort the rest; the failure is logged, not surfaced.
func ParseTransaction(v Value) *Transaction {
	tx, err := DecodeTransactionTree(v)
	if err != nil {
		log.Printf("transaction-parse-skip err=%q", err)
		return nil
	}
	return &tx
}
