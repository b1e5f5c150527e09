package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mdunits/internal/core/domain"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		expr   string
		factor float64
		names  domain.Powers[string]
	}{
		{"nm", 1, domain.Powers[string]{"nm": domain.Int(1)}},
		{"1.5 nm", 1.5, domain.Powers[string]{"nm": domain.Int(1)}},
		{"kJ / mol", 1, domain.Powers[string]{"kJ": domain.Int(1), "mol": domain.Int(-1)}},
		{"kJ mol**-1", 1, domain.Powers[string]{"kJ": domain.Int(1), "mol": domain.Int(-1)}},
		{"m^2 / s / s", 1, domain.Powers[string]{"m": domain.Int(2), "s": domain.Int(-2)}},
		{"(m / s) ** 2", 1, domain.Powers[string]{"m": domain.Int(2), "s": domain.Int(-2)}},
		{"m ** (1/3)", 1, domain.Powers[string]{"m": domain.NewExponent(1, 3)}},
		{"m ** 0.5", 1, domain.Powers[string]{"m": domain.NewExponent(1, 2)}},
		{"-2.5e3 K", -2500, domain.Powers[string]{"K": domain.Int(1)}},
		{"5 / 9 * kelvin", 5.0 / 9.0, domain.Powers[string]{"kelvin": domain.Int(1)}},
		{"[length] / [time]", 1, domain.Powers[string]{"[length]": domain.Int(1), "[time]": domain.Int(-1)}},
		{"Å", 1, domain.Powers[string]{"Å": domain.Int(1)}},
		{"1 / ps", 1, domain.Powers[string]{"ps": domain.Int(-1)}},
		{"42", 42, domain.Powers[string]{}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := parseExpression(tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.factor, got.factor, 1e-12)
			assert.True(t, tt.names.Equal(got.names), "got %v", got.names)
		})
	}
}

func TestParseExpression_Errors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"nm **",
		"(nm",
		"nm)",
		"nm / 0",
		"[length",
		"m ** (a)",
		"nm $",
		"* nm",
		"m ** 9223372036854775807 * m",
		"m ** 1048576 * m",
		"m ** (1/2000000)",
		"(m ** 1024) ** 2048",
		"m ** -1048576 / m",
	}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := parseExpression(expr)
			require.ErrorIs(t, err, domain.ErrInvalidExpression)
		})
	}
}

func TestFormatParsesBack(t *testing.T) {
	c := domain.UnitsContainer{
		"nanometer":  domain.Int(2),
		"picosecond": domain.Int(-2),
		"mole":       domain.NewExponent(-1, 3),
	}
	got, err := parseExpression(c.Format(domain.DimensionlessName))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.factor)
	for _, it := range c.Items() {
		assert.Equal(t, it.Exponent, got.names[string(it.Key)], it.Key)
	}
}
