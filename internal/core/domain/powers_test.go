package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/mdunits/internal/core/domain"
)

func TestPowers_Algebra(t *testing.T) {
	velocity := domain.Dimensionality{
		domain.DimLength: domain.Int(1),
		domain.DimTime:   domain.Int(-1),
	}
	time := domain.Single(domain.DimTime, domain.Int(1))

	length := velocity.Mul(time)
	assert.True(t, length.Equal(domain.Single(domain.DimLength, domain.Int(1))))
	_, hasTime := length[domain.DimTime]
	assert.False(t, hasTime, "zero exponents are removed")

	accel := velocity.Div(time)
	assert.Equal(t, domain.Int(-2), accel[domain.DimTime])

	assert.True(t, velocity.Pow(domain.Int(0)).IsEmpty())
	assert.Equal(t, domain.NewExponent(-1, 2), velocity.Pow(domain.NewExponent(1, 2))[domain.DimTime])
	assert.True(t, domain.Single(domain.DimMass, domain.Int(0)).IsEmpty())

	// Operations never modify their receivers.
	assert.Len(t, velocity, 2)
	assert.Equal(t, domain.Int(-1), velocity[domain.DimTime])
}

func TestPowers_Items(t *testing.T) {
	p := domain.Dimensionality{
		domain.DimTime:   domain.Int(-2),
		domain.DimLength: domain.Int(2),
		domain.DimMass:   domain.Int(1),
	}
	items := p.Items()
	keys := make([]domain.Dimension, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	assert.Equal(t, []domain.Dimension{domain.DimLength, domain.DimMass, domain.DimTime}, keys)
}

func TestPowers_Format(t *testing.T) {
	tests := []struct {
		name string
		in   domain.UnitsContainer
		want string
	}{
		{"empty", domain.UnitsContainer{}, "dimensionless"},
		{"single", domain.UnitsContainer{"nanometer": domain.Int(1)}, "nanometer"},
		{"power", domain.UnitsContainer{"nanometer": domain.Int(2)}, "nanometer ** 2"},
		{"inverse", domain.UnitsContainer{"picosecond": domain.Int(-1)}, "1 / picosecond"},
		{
			"mixed",
			domain.UnitsContainer{"kilojoule": domain.Int(1), "mole": domain.Int(-1), "nanometer": domain.Int(-2)},
			"kilojoule / mole / nanometer ** 2",
		},
		{"fraction", domain.UnitsContainer{"meter": domain.NewExponent(1, 3)}, "meter ** (1/3)"},
		{"negative fraction", domain.UnitsContainer{"meter": domain.NewExponent(-1, 2)}, "1 / meter ** (1/2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Format(domain.DimensionlessName))
		})
	}
}

func TestDimension_Valid(t *testing.T) {
	assert.True(t, domain.DimLength.Valid())
	assert.True(t, domain.Dimension("[amount_2]").Valid())
	assert.False(t, domain.Dimension("length").Valid())
	assert.False(t, domain.Dimension("[]").Valid())
	assert.False(t, domain.Dimension("[a b]").Valid())
}
