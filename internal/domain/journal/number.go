package journal

import (
	"errors"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrInvalidPrices is returned when an entry or exit price is not a number.
var ErrInvalidPrices = errors.New("Entry and Exit price must be valid numbers!")

// normalizeNumber trims the text and accepts ',' as a decimal separator.
func normalizeNumber(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
}

// Bounds on accepted prices. Checked before rounding, which would otherwise
// expand an exponent like 1e9999999 into millions of digits.
const (
	maxNumberLen     = 64
	maxIntegerDigits = 15
	minExponent      = -maxNumberLen
)

var errNumberRange = errors.New("number out of range")

// ParsePrice parses text as a finite decimal with at most 15 integer digits
// and rounds it to cents.
func ParsePrice(text string) (decimal.Decimal, error) {
	s := normalizeNumber(text)
	if s == "" {
		return decimal.Zero, errors.New("empty number")
	}
	if len(s) > maxNumberLen {
		return decimal.Zero, errNumberRange
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	exp := int(d.Exponent())
	if exp < minExponent || d.NumDigits()+exp > maxIntegerDigits {
		return decimal.Zero, errNumberRange
	}
	return Round2(d), nil
}

// IsValidNumber reports whether text parses as a finite decimal number.
func IsValidNumber(text string) bool {
	_, err := ParsePrice(text)
	return err == nil
}

// Round2 rounds half away from zero to two fractional digits.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// usd formats amounts without a thousands separator so result text
// still parses as a number once the currency sign is stripped.
var usd = func() *money.Formatter {
	c := money.GetCurrency(money.USD)
	return money.NewFormatter(c.Fraction, c.Decimal, "", c.Grapheme, c.Template)
}()

// FormatResult renders the magnitude of pl as currency, e.g. "$5.50".
// Amounts whose cents do not fit an int64 are formatted from the decimal.
func FormatResult(pl decimal.Decimal) string {
	abs := Round2(pl).Abs()
	cents := abs.Shift(2).BigInt()
	if !cents.IsInt64() {
		return usd.Grapheme + abs.StringFixed(2)
	}
	return usd.Format(cents.Int64())
}

// parseResult validates a persisted result cell: "$" and "+" are stripped
// and the rest must be a number.
func parseResult(text string) (decimal.Decimal, error) {
	s := strings.NewReplacer("$", "", "+", "").Replace(text)
	return ParsePrice(s)
}
