// Package money converts between user-entered decimal amounts and the
// minor-unit integers every other part of the client works with. All
// supported currencies use two fraction digits on the wire, mirroring the
// backend's uniform cent scaling.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const fractionDigits = 2

var (
	ErrEmptyAmount     = errors.New("amount is empty")
	ErrMalformedAmount = errors.New("amount is not a valid decimal number")
	ErrTooManyDecimals = errors.New("amount has more than 2 decimal places")
	ErrAmountTooLarge  = errors.New("amount does not fit in 64 bits of minor units")
)

// ParseMajor converts a decimal string such as "12.34" into minor units
// (1234). Parsing is done on the digit strings directly so no floating
// point rounding can creep into balances.
func ParseMajor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyAmount
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole, fraction, found := strings.Cut(s, ".")
	if whole == "" && fraction == "" {
		return 0, ErrMalformedAmount
	}
	if whole == "" {
		whole = "0"
	}
	if found && fraction == "" {
		return 0, ErrMalformedAmount
	}
	if len(fraction) > fractionDigits {
		return 0, ErrTooManyDecimals
	}
	for len(fraction) < fractionDigits {
		fraction += "0"
	}

	// The sign is already stripped, so any remaining non-digit is a
	// malformed amount, including a second sign after the dot.
	units, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, ErrMalformedAmount
	}
	cents, err := strconv.ParseUint(fraction, 10, 64)
	if err != nil {
		return 0, ErrMalformedAmount
	}

	// units*100+cents must not wrap: a wrapped value would look like a
	// small, perfectly affordable amount.
	if units > (math.MaxInt64-cents)/100 {
		return 0, ErrAmountTooLarge
	}

	minor := int64(units)*100 + int64(cents)
	if negative {
		minor = -minor
	}
	return minor, nil
}

// FormatMinor renders minor units back to a decimal string: 1234 -> "12.34".
func FormatMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// FormatWithCurrency renders an amount for display, e.g. "12.34 USD".
func FormatWithCurrency(minor int64, currency string) string {
	return FormatMinor(minor) + " " + currency
}
