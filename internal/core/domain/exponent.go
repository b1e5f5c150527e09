package domain

import (
	"math"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// MaxExponent bounds the numerator and denominator of exponents accepted
// from expressions, so that combining two of them cannot overflow int64.
const MaxExponent int64 = 1 << 20

// Exponent is an exact rational power. The zero value is 0.
type Exponent struct {
	num int64
	den int64
}

// NewExponent returns num/den in lowest terms. It panics if den is zero.
func NewExponent(num, den int64) Exponent {
	if den == 0 {
		panic("domain: exponent with zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs(num), den); g > 1 {
		num, den = num/g, den/g
	}
	return Exponent{num: num, den: den}
}

// Int returns the exponent n/1.
func Int(n int64) Exponent {
	return Exponent{num: n, den: 1}
}

// ParseExponent parses "2", "-1", "0.5" or "1/3" into an exact exponent.
func ParseExponent(s string) (Exponent, error) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		if err != nil {
			return Exponent{}, zerr.With(zerr.Wrap(ErrInvalidExpression, "invalid exponent numerator"), "exponent", s)
		}
		d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil || d == 0 {
			return Exponent{}, zerr.With(zerr.Wrap(ErrInvalidExpression, "invalid exponent denominator"), "exponent", s)
		}
		if n < -MaxExponent || n > MaxExponent || d < -MaxExponent || d > MaxExponent {
			return Exponent{}, zerr.With(zerr.Wrap(ErrInvalidExpression, "exponent out of range"), "exponent", s)
		}
		return NewExponent(n, d), nil
	}
	e, err := parseDecimalExponent(s)
	if err != nil {
		return Exponent{}, err
	}
	return checkRange(e, s)
}

func checkRange(e Exponent, s string) (Exponent, error) {
	if !e.InRange() {
		return Exponent{}, zerr.With(zerr.Wrap(ErrInvalidExpression, "exponent out of range"), "exponent", s)
	}
	return e, nil
}

// parseDecimalExponent converts a decimal literal into an exact fraction of a power of ten.
func parseDecimalExponent(s string) (Exponent, error) {
	neg := false
	body := s
	switch {
	case strings.HasPrefix(body, "-"):
		neg, body = true, body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}
	whole, frac, _ := strings.Cut(body, ".")
	if whole == "" && frac == "" {
		return Exponent{}, zerr.With(zerr.Wrap(ErrInvalidExpression, "empty exponent"), "exponent", s)
	}
	if len(frac) > 9 {
		return Exponent{}, zerr.With(zerr.Wrap(ErrInvalidExpression, "exponent has too many decimal places"), "exponent", s)
	}
	digits := whole + frac
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Exponent{}, zerr.With(zerr.Wrap(ErrInvalidExpression, "invalid exponent"), "exponent", s)
	}
	den := int64(1)
	for range len(frac) {
		den *= 10
	}
	if neg {
		n = -n
	}
	return NewExponent(n, den), nil
}

// Num returns the numerator.
func (e Exponent) Num() int64 { return e.num }

// Den returns the denominator, which is 1 for the zero value.
func (e Exponent) Den() int64 {
	if e.den == 0 {
		return 1
	}
	return e.den
}

// IsZero reports whether e == 0.
func (e Exponent) IsZero() bool { return e.num == 0 }

// InRange reports whether numerator and denominator are both within MaxExponent.
func (e Exponent) InRange() bool {
	return e.num >= -MaxExponent && e.num <= MaxExponent && e.Den() <= MaxExponent
}

// IsInteger reports whether e has no fractional part.
func (e Exponent) IsInteger() bool { return e.Den() == 1 }

// Sign returns -1, 0 or 1.
func (e Exponent) Sign() int {
	switch {
	case e.num < 0:
		return -1
	case e.num > 0:
		return 1
	default:
		return 0
	}
}

// Add returns e + o.
func (e Exponent) Add(o Exponent) Exponent {
	return NewExponent(e.num*o.Den()+o.num*e.Den(), e.Den()*o.Den())
}

// Mul returns e * o.
func (e Exponent) Mul(o Exponent) Exponent {
	return NewExponent(e.num*o.num, e.Den()*o.Den())
}

// Neg returns -e.
func (e Exponent) Neg() Exponent {
	return Exponent{num: -e.num, den: e.Den()}
}

// Abs returns |e|.
func (e Exponent) Abs() Exponent {
	return Exponent{num: abs(e.num), den: e.Den()}
}

// Float64 returns the exponent as a float.
func (e Exponent) Float64() float64 {
	return float64(e.num) / float64(e.Den())
}

// Pow raises x to the power e.
func (e Exponent) Pow(x float64) float64 {
	if e.IsInteger() {
		return math.Pow(x, float64(e.num))
	}
	return math.Pow(x, e.Float64())
}

// String renders integers plainly and fractions as "n/d".
func (e Exponent) String() string {
	if e.IsInteger() {
		return strconv.FormatInt(e.num, 10)
	}
	return strconv.FormatInt(e.num, 10) + "/" + strconv.FormatInt(e.Den(), 10)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
