package balance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is the account snapshot embedded in every transaction. It is a
// denormalized value copy taken at creation time, not a live reference: a
// later edit of the account does not rewrite historical transactions.
type BankAccount struct {
	ID        int
	UserID    int // optional on the wire, zero when the backend omits it
	Name      string
	Balance   decimal.Decimal
	Currency  Currency
	CreatedAt time.Time // optional, zero when the backend omits it
	UpdatedAt time.Time
}

// Equal reports whether two accounts hold the same values. Balances are
// compared numerically, timestamps by instant.
func (a BankAccount) Equal(b BankAccount) bool {
	return a.ID == b.ID &&
		a.UserID == b.UserID &&
		a.Name == b.Name &&
		a.Balance.Equal(b.Balance) &&
		a.Currency == b.Currency &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		a.UpdatedAt.Equal(b.UpdatedAt)
}

// Tree returns the account as an interchange tree. The balance always travels
// as a decimal string, never a native number. Zero timestamps are omitted.
func (a BankAccount) Tree() *Object {
	obj := NewObject().
		Set("id", Int(a.ID)).
		Set("userId", Int(a.UserID)).
		Set("name", Text(a.Name)).
		Set("balance", Text(EncodeDecimal(a.Balance))).
		Set("currency", Text(a.Currency))
	if !a.CreatedAt.IsZero() {
		obj.Set("createdAt", Text(EncodeTimestamp(a.CreatedAt)))
	}
	if !a.UpdatedAt.IsZero() {
		obj.Set("updatedAt", Text(EncodeTimestamp(a.UpdatedAt)))
	}
	return obj
}

// DecodeBankAccountTree decodes an account from an interchange tree, reporting
// the offending field path on failure.
func DecodeBankAccountTree(v Value) (BankAccount, error) {
	return decodeBankAccount(v, "")
}

func decodeBankAccount(v Value, path string) (BankAccount, error) {
	obj, ok := v.(*Object)
	if !ok {
		return BankAccount{}, &FieldError{Path: path, Err: fmt.Errorf("expected an object, got %T", v)}
	}
	id, err := obj.intAt(path, "id")
	if err != nil {
		return BankAccount{}, err
	}
	userID, err := obj.optionalIntAt(path, "userId")
	if err != nil {
		return BankAccount{}, err
	}
	name, err := obj.textAt(path, "name")
	if err != nil {
		return BankAccount{}, err
	}
	balance, err := obj.decimalAt(path, "balance")
	if err != nil {
		return BankAccount{}, err
	}
	code, err := obj.textAt(path, "currency")
	if err != nil {
		return BankAccount{}, err
	}
	currency, err := ParseCurrency(code)
	if err != nil {
		return BankAccount{}, &FieldError{Path: joinPath(path, "currency"), Err: err}
	}
	createdAt, err := obj.optionalTimeAt(path, "createdAt")
	if err != nil {
		return BankAccount{}, err
	}
	updatedAt, err := obj.optionalTimeAt(path, "updatedAt")
	if err != nil {
		return BankAccount{}, err
	}
	return BankAccount{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Balance:   balance,
		Currency:  currency,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
