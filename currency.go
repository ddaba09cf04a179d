package balance

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

// Currency identifies the settlement currency of a bank account.
type Currency string

const (
	RUB Currency = "RUB"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{RUB, USD, EUR}

// ParseCurrency validates a wire currency code.
func ParseCurrency(code string) (Currency, error) {
	switch c := Currency(code); c {
	case RUB, USD, EUR:
		return c, nil
	}
	return "", fmt.Errorf("unknown currency %q", code)
}

// Symbol returns the display symbol (₽, $, €) from the go-money currency table.
func (c Currency) Symbol() string {
	if cur := money.GetCurrency(string(c)); cur != nil {
		return cur.Grapheme
	}
	return string(c)
}

// FullName returns the long display name of the currency.
func (c Currency) FullName() string {
	switch c {
	case RUB:
		return "Russian Ruble"
	case USD:
		return "US Dollar"
	case EUR:
		return "Euro"
	}
	return string(c)
}

func (c Currency) String() string { return string(c) }

// CurrencyFromSymbol maps a display symbol back to its currency. An
// unrecognized symbol maps to RUB rather than failing. This fallback is
// intentional and load-bearing: callers round-trip user-facing strings through
// it and expect a usable currency, not an error.
func CurrencyFromSymbol(symbol string) Currency {
	for _, c := range Currencies {
		if c.Symbol() == symbol {
			return c
		}
	}
	return RUB
}
