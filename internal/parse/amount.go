package parse

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var leadingNumber = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)

// StripAmount drops currency symbols, thousands separators and anything else
// that is not a digit, minus sign or decimal point.
func StripAmount(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}

		return -1
	}, s)
}

// Amount reads the longest number at the start of the stripped input, so
// "12.50-" is 12.50 and "1.234.56" is 1.234. It fails only when the input
// does not start with a number.
func Amount(s string) (decimal.Decimal, error) {
	num := leadingNumber.FindString(StripAmount(s))
	if num == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(strings.TrimSuffix(num, "."))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	return d, nil
}
