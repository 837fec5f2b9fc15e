package normalize

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

var (
	errEmpty    = errors.New("empty value")
	errNegative = errors.New("negative value")
	errFormat   = errors.New("not a plain decimal number")
)

// plainDecimal is the only accepted price shape after cleaning: no sign, no exponent.
var plainDecimal = regexp.MustCompile(`^\d+(\.\d+)?$`)

// priceReplacer strips the currency symbol and grouping commas: "$1,234.50" -> "1234.50".
var priceReplacer = strings.NewReplacer("$", "", ",", "")

// MatchesProduct reports whether a product cell names the target product.
func MatchesProduct(product string) bool {
	return strings.EqualFold(strings.TrimSpace(product), sales.TargetProduct)
}

// ParsePrice parses a "$"-prefixed, optionally comma-grouped decimal price.
// Negative, signed and exponent forms are rejected.
func ParsePrice(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(priceReplacer.Replace(s))
	if clean == "" {
		return decimal.Zero, &sales.MalformedPriceError{Value: s, Err: errEmpty}
	}

	if !plainDecimal.MatchString(clean) {
		return decimal.Zero, &sales.MalformedPriceError{Value: s, Err: errFormat}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &sales.MalformedPriceError{Value: s, Err: err}
	}

	return d, nil
}

// ParseQuantity parses a non-negative integer quantity.
func ParseQuantity(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, &sales.MalformedQuantityError{Value: s, Err: errEmpty}
	}

	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, &sales.MalformedQuantityError{Value: s, Err: err}
	}

	if n < 0 {
		return 0, &sales.MalformedQuantityError{Value: s, Err: errNegative}
	}

	return n, nil
}

// ParseDate parses an ISO-8601 calendar date. Timestamps are reduced to their calendar date.
func ParseDate(s string) (time.Time, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return time.Time{}, &sales.MalformedDateError{Value: s, Err: errEmpty}
	}

	if t, err := time.Parse(time.DateOnly, clean); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, clean)
	if err != nil {
		return time.Time{}, &sales.MalformedDateError{Value: s, Err: err}
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
