package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mdunits/internal/core/domain"
)

func TestNewExponent_Normalizes(t *testing.T) {
	assert.Equal(t, domain.NewExponent(1, 2), domain.NewExponent(2, 4))
	assert.Equal(t, domain.NewExponent(-1, 3), domain.NewExponent(1, -3))
	assert.Equal(t, domain.Int(0), domain.NewExponent(0, 7))
	assert.Panics(t, func() { domain.NewExponent(1, 0) })
}

func TestExponent_Arithmetic(t *testing.T) {
	half := domain.NewExponent(1, 2)
	third := domain.NewExponent(1, 3)

	assert.Equal(t, domain.NewExponent(5, 6), half.Add(third))
	assert.Equal(t, domain.NewExponent(1, 6), half.Mul(third))
	assert.Equal(t, domain.NewExponent(-1, 2), half.Neg())
	assert.Equal(t, half, half.Neg().Abs())
	assert.Equal(t, domain.Int(1), half.Add(half))
	assert.True(t, half.Add(half.Neg()).IsZero())
	assert.InDelta(t, 0.5, half.Float64(), 0)
	assert.InDelta(t, 3.0, half.Pow(9), 1e-12)
	assert.InDelta(t, 0.25, domain.Int(-2).Pow(2), 0)
	assert.Equal(t, -1, half.Neg().Sign())
	assert.Equal(t, 0, domain.Exponent{}.Sign())
}

func TestExponent_ZeroValue(t *testing.T) {
	var zero domain.Exponent
	assert.True(t, zero.IsZero())
	assert.True(t, zero.IsInteger())
	assert.Equal(t, int64(1), zero.Den())
	assert.Equal(t, domain.Int(3), zero.Add(domain.Int(3)))
	assert.Equal(t, "0", zero.String())
}

func TestParseExponent(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Exponent
	}{
		{"2", domain.Int(2)},
		{"-1", domain.Int(-1)},
		{"+3", domain.Int(3)},
		{"0.5", domain.NewExponent(1, 2)},
		{"-1.25", domain.NewExponent(-5, 4)},
		{".5", domain.NewExponent(1, 2)},
		{"1/3", domain.NewExponent(1, 3)},
		{"-2/4", domain.NewExponent(-1, 2)},
		{"3/-6", domain.NewExponent(-1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseExponent(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExponent_Errors(t *testing.T) {
	for _, in := range []string{"", "a", "1/0", "x/2", "1/y", "0.1234567891", "1e3", "9223372036854775807", "-9223372036854775808/1", "1/-9223372036854775808", "1/2000000"} {
		t.Run(in, func(t *testing.T) {
			_, err := domain.ParseExponent(in)
			require.ErrorIs(t, err, domain.ErrInvalidExpression)
		})
	}
}

func TestExponent_String(t *testing.T) {
	assert.Equal(t, "2", domain.Int(2).String())
	assert.Equal(t, "-1/3", domain.NewExponent(-1, 3).String())
}

func TestExponent_InRange(t *testing.T) {
	assert.True(t, domain.Int(domain.MaxExponent).InRange())
	assert.True(t, domain.NewExponent(-domain.MaxExponent, domain.MaxExponent-1).InRange())
	assert.False(t, domain.Int(domain.MaxExponent+1).InRange())
	assert.False(t, domain.NewExponent(1, domain.MaxExponent+1).InRange())

	p := domain.Powers[string]{"meter": domain.Int(2), "second": domain.Int(-domain.MaxExponent - 1)}
	assert.False(t, p.InRange())
	assert.True(t, domain.Single("meter", domain.Int(3)).InRange())
}
