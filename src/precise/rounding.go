package precise

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"exchangenorm/src/errs"
)

type RoundingMode int

const (
	// Round is half away from zero, symmetric around zero.
	Round RoundingMode = iota
	// RoundUp rounds toward positive infinity.
	RoundUp
	// RoundDown rounds toward negative infinity.
	RoundDown
	// Truncate drops digits, rounding toward zero.
	Truncate
)

type CountingMode int

const (
	TickSize CountingMode = iota
	DecimalPlaces
	SignificantDigits
)

type PaddingMode int

const (
	NoPadding PaddingMode = iota
	PadWithZero
)

var roundingModeNames = map[string]RoundingMode{
	"round":      Round,
	"round_up":   RoundUp,
	"ceil":       RoundUp,
	"round_down": RoundDown,
	"floor":      RoundDown,
	"truncate":   Truncate,
}

// ParseRoundingMode accepts round, round_up/ceil, round_down/floor and truncate.
func ParseRoundingMode(s string) (RoundingMode, error) {
	if m, ok := roundingModeNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return Round, errs.New(errs.ErrBadRequest, "unknown rounding mode %q", s)
}

var countingModeNames = map[string]CountingMode{
	"tick_size":          TickSize,
	"tick":               TickSize,
	"decimal_places":     DecimalPlaces,
	"significant_digits": SignificantDigits,
}

func ParseCountingMode(s string) (CountingMode, error) {
	if m, ok := countingModeNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return TickSize, errs.New(errs.ErrBadRequest, "unknown counting mode %q", s)
}

// ToPrecision rounds value according to precision, interpreted by counting.
func ToPrecision(value string, rounding RoundingMode, precision string, counting CountingMode, padding PaddingMode) (string, error) {
	v, err := Parse(value)
	if err != nil {
		return "", err
	}
	var (
		tick   decimal.Decimal
		digits int32
	)
	switch counting {
	case TickSize:
		tick, err = Parse(precision)
		if err != nil {
			return "", err
		}
		if tick.Sign() <= 0 {
			return "", errs.New(errs.ErrInvalidPrecision, "tick size must be positive, got %q", precision)
		}
		digits = fractionDigits(tick)
	case DecimalPlaces:
		places, perr := parseDigits(precision)
		if perr != nil {
			return "", perr
		}
		tick = decimal.New(1, -places)
		digits = places
	case SignificantDigits:
		sig, perr := parseDigits(precision)
		if perr != nil {
			return "", perr
		}
		if sig <= 0 {
			return "", errs.New(errs.ErrInvalidPrecision, "significant digits must be positive, got %q", precision)
		}
		if v.IsZero() {
			return pad("0", sig-1, padding), nil
		}
		places := sig - 1 - magnitude(v)
		tick = decimal.New(1, -places)
		digits = places
	default:
		return "", errs.New(errs.ErrInvalidPrecision, "unknown counting mode %d", counting)
	}

	q := v.DivRound(tick, 32)
	switch rounding {
	case Round:
		q = q.Round(0)
	case RoundUp:
		q = q.Ceil()
	case RoundDown:
		q = q.Floor()
	case Truncate:
		q = q.Truncate(0)
	default:
		return "", errs.New(errs.ErrInvalidPrecision, "unknown rounding mode %d", rounding)
	}
	out := q.Mul(tick).String()
	if digits < 0 {
		digits = 0
	}
	return pad(out, digits, padding), nil
}

// ParsePrecision turns a digit count into a tick, "3" -> "0.001".
func ParsePrecision(digits string) string {
	if digits == "" {
		return ""
	}
	n, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil {
		return ""
	}
	return decimal.New(1, int32(-n)).String()
}

// PrecisionFromString counts the fractional digits of a tick, "0.001" -> "3".
func PrecisionFromString(tick string) string {
	d, err := decimal.NewFromString(tick)
	if err != nil {
		return ""
	}
	return strconv.Itoa(int(fractionDigits(d)))
}

func parseDigits(s string) (int32, error) {
	d, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, errs.New(errs.ErrInvalidPrecision, "digit count must be an integer, got %q", s)
	}
	return int32(d.IntPart()), nil
}

// fractionDigits counts digits after the point once trailing zeros are gone.
func fractionDigits(d decimal.Decimal) int32 {
	s := d.String()
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return int32(len(s) - i - 1)
}

// magnitude is the power of ten of the leading significant digit.
func magnitude(d decimal.Decimal) int32 {
	coef := d.Coefficient()
	coef.Abs(coef)
	return int32(len(coef.String())) - 1 + d.Exponent()
}

func pad(s string, digits int32, padding PaddingMode) string {
	if padding != PadWithZero || digits <= 0 {
		return s
	}
	i := strings.IndexByte(s, '.')
	have := int32(0)
	if i < 0 {
		s += "."
	} else {
		have = int32(len(s) - i - 1)
	}
	if have < digits {
		s += strings.Repeat("0", int(digits-have))
	}
	return s
}
