// Package precise does exact arithmetic and rounding on decimal strings.
// An empty string stands for an undefined value and propagates through every
// arithmetic helper.
package precise

import (
	"strings"

	"github.com/shopspring/decimal"

	"exchangenorm/src/errs"
)

// DivisionDigits is the number of fractional digits kept by Div.
const DivisionDigits = 18

// Parse reads a decimal string. Malformed input fails with InvalidPrecision.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errs.Wrap(errs.ErrInvalidPrecision, err, "malformed number %q", s)
	}
	return d, nil
}

// Format renders d without trailing zeros.
func Format(d decimal.Decimal) string {
	return d.String()
}

func binary(a, b string, op func(x, y decimal.Decimal) decimal.Decimal) string {
	if a == "" || b == "" {
		return ""
	}
	x, err := decimal.NewFromString(a)
	if err != nil {
		return ""
	}
	y, err := decimal.NewFromString(b)
	if err != nil {
		return ""
	}
	return op(x, y).String()
}

func Add(a, b string) string {
	return binary(a, b, func(x, y decimal.Decimal) decimal.Decimal { return x.Add(y) })
}

func Sub(a, b string) string {
	return binary(a, b, func(x, y decimal.Decimal) decimal.Decimal { return x.Sub(y) })
}

func Mul(a, b string) string {
	return binary(a, b, func(x, y decimal.Decimal) decimal.Decimal { return x.Mul(y) })
}

// Div returns "" when b is zero.
func Div(a, b string) string {
	if y, err := decimal.NewFromString(b); err == nil && y.IsZero() {
		return ""
	}
	return binary(a, b, func(x, y decimal.Decimal) decimal.Decimal { return x.DivRound(y, DivisionDigits) })
}

func Mod(a, b string) string {
	if y, err := decimal.NewFromString(b); err == nil && y.IsZero() {
		return ""
	}
	return binary(a, b, func(x, y decimal.Decimal) decimal.Decimal { return x.Mod(y) })
}

func Min(a, b string) string {
	return binary(a, b, func(x, y decimal.Decimal) decimal.Decimal { return decimal.Min(x, y) })
}

func Max(a, b string) string {
	return binary(a, b, func(x, y decimal.Decimal) decimal.Decimal { return decimal.Max(x, y) })
}

func Neg(a string) string {
	if a == "" {
		return ""
	}
	x, err := decimal.NewFromString(a)
	if err != nil {
		return ""
	}
	return x.Neg().String()
}

func Abs(a string) string {
	if a == "" {
		return ""
	}
	x, err := decimal.NewFromString(a)
	if err != nil {
		return ""
	}
	return x.Abs().String()
}

func compare(a, b string) (int, bool) {
	if a == "" || b == "" {
		return 0, false
	}
	x, err := decimal.NewFromString(a)
	if err != nil {
		return 0, false
	}
	y, err := decimal.NewFromString(b)
	if err != nil {
		return 0, false
	}
	return x.Cmp(y), true
}

func Gt(a, b string) bool {
	c, ok := compare(a, b)
	return ok && c > 0
}

func Ge(a, b string) bool {
	c, ok := compare(a, b)
	return ok && c >= 0
}

func Lt(a, b string) bool {
	c, ok := compare(a, b)
	return ok && c < 0
}

func Le(a, b string) bool {
	c, ok := compare(a, b)
	return ok && c <= 0
}

func Eq(a, b string) bool {
	c, ok := compare(a, b)
	return ok && c == 0
}

// MinOf folds Min over the defined values; undefined entries are skipped.
func MinOf(values ...string) string {
	out := ""
	for _, v := range values {
		if v == "" {
			continue
		}
		if out == "" {
			out = v
			continue
		}
		if m := Min(out, v); m != "" {
			out = m
		}
	}
	return out
}

// MaxOf folds Max over the defined values; undefined entries are skipped.
func MaxOf(values ...string) string {
	out := ""
	for _, v := range values {
		if v == "" {
			continue
		}
		if out == "" {
			out = v
			continue
		}
		if m := Max(out, v); m != "" {
			out = m
		}
	}
	return out
}
