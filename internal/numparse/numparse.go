// Package numparse converts locale-formatted numeric strings such as "12 345,67"
// into numbers. Thousands groups may be separated by ordinary or non-breaking
// spaces and the decimal separator may be a comma.
package numparse

import (
	"errors"
	"math"
	"strings"

	"fjacquet/pdn-calc/internal/apperror"

	"github.com/shopspring/decimal"
)

const source = "numparse"

// ErrOutOfRange is returned for values that do not fit a finite float64, such as "1e400".
var ErrOutOfRange = errors.New("value out of float64 range")

// separators are dropped before parsing.
var separators = strings.NewReplacer(
	"\u00a0", "", // no-break space
	"\u202f", "", // narrow no-break space
	"\u2009", "", // thin space
	" ", "",
	"\t", "",
)

// Normalize strips thousands separators and turns a decimal comma into a point.
// It does not validate the result.
func Normalize(token string) string {
	s := separators.Replace(strings.TrimSpace(token))
	return strings.ReplaceAll(s, ",", ".")
}

// ParseDecimal normalizes token and parses it as an exact decimal.
func ParseDecimal(token string) (decimal.Decimal, error) {
	normalized := Normalize(token)
	if normalized == "" {
		return decimal.Zero, &apperror.ParseError{Source: source, Field: "number", Value: token, Err: apperror.ErrEmptyValue}
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, &apperror.ParseError{Source: source, Field: "number", Value: token, Err: err}
	}
	return d, nil
}

// Parse normalizes token and parses it as a float64.
func Parse(token string) (float64, error) {
	d, err := ParseDecimal(token)
	if err != nil {
		return 0, err
	}
	return toFinite(token, d)
}

// ParseRounded is Parse rounded to two decimal places.
func ParseRounded(token string) (float64, error) {
	d, err := ParseDecimal(token)
	if err != nil {
		return 0, err
	}
	return toFinite(token, d.Round(2))
}

func toFinite(token string, d decimal.Decimal) (float64, error) {
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &apperror.ParseError{Source: source, Field: "number", Value: token, Err: ErrOutOfRange}
	}
	return f, nil
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
