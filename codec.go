package balance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampFormat is the canonical wire form for timestamps: ISO-8601 with
// millisecond fractional seconds, always in UTC on write.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// DecodeDecimal parses a plain base-10 decimal literal. No locale-specific
// grouping or separators are accepted at this layer; that normalization is the
// UI's problem. Monetary values must round-trip exactly through text, so this
// never goes through a binary float.
func DecodeDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	return d, nil
}

// EncodeDecimal returns the canonical text form of d: trailing fractional
// zeros are trimmed, so 100.50 encodes as "100.5" and 5000.00 as "5000".
// The encoding is numerically lossless: DecodeDecimal(EncodeDecimal(d))
// equals d for every d, but the input's scale is not preserved.
func EncodeDecimal(d decimal.Decimal) string { return d.String() }

// DecodeTimestamp parses an ISO-8601 timestamp. The remote API does not
// consistently emit fractional seconds, so reads accept both the fractional
// and the whole-second form.
func DecodeTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t, nil
}

// EncodeTimestamp returns t in the canonical fractional-seconds form, in UTC.
// Precision below the millisecond is not representable on the wire and is
// truncated.
func EncodeTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
