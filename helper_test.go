package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shared test fixtures. All timestamps carry millisecond precision at most,
// matching what the wire format can represent.

// dec is a helper for tests to build a decimal from a literal.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ts is a helper for tests to build a time from an ISO-8601 literal.
func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func strptr(s string) *string { return &s }

func testAccount() BankAccount {
	return BankAccount{
		ID:        100,
		UserID:    1,
		Name:      "Main account",
		Balance:   dec("5000.00"),
		Currency:  RUB,
		CreatedAt: ts("2025-06-01T10:00:00.000Z"),
		UpdatedAt: ts("2025-06-01T10:00:00.000Z"),
	}
}

func testCategory() Category {
	return Category{ID: 200, Name: "Groceries", Emoji: "🍔", Direction: Outcome}
}

func testTransaction(id int, amount string) Transaction {
	return Transaction{
		ID:              id,
		Account:         testAccount(),
		Category:        testCategory(),
		Amount:          dec(amount),
		TransactionDate: ts("2025-06-14T12:00:00.000Z"),
		Comment:         strptr("weekly shopping"),
		CreatedAt:       ts("2025-06-14T12:00:00.000Z"),
		UpdatedAt:       ts("2025-06-14T12:00:00.000Z"),
	}
}
