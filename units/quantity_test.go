package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mdunits/units"
)

func TestQuantity_ToMDUnits(t *testing.T) {
	reg := newRegistry(t)

	tests := []struct {
		name  string
		value float64
		expr  string
		want  float64
		units string
	}{
		{"angstrom", 1, "angstrom", 0.1, "nanometer"},
		{"kelvin unchanged", 1, "kelvin", 1, "kelvin"},
		{"ampere", 1, "ampere", 6241509.074460763, "elementary_charge / picosecond"},
		{"femtosecond", 2, "fs", 0.002, "picosecond"},
		{"dalton", 12, "Da", 12, "unified_atomic_mass_unit"},
		{"millimole", 5, "mmol", 0.005, "mole"},
		{"celsius", 25, "degC", 298.15, "kelvin"},
		{"kJ/mol", 1, "kJ/mol", 1000 / 1.66053906660e-21, "nanometer ** 2 * unified_atomic_mass_unit / mole / picosecond ** 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := reg.MustQuantity(tt.value, tt.expr)
			got, err := q.ToMDUnits()
			require.NoError(t, err)
			assert.InEpsilon(t, tt.want, got.Magnitude(), 1e-12)
			assert.Equal(t, tt.units, got.Units().String())

			// The input is left untouched.
			assert.InDelta(t, tt.value, q.Magnitude(), 0)
		})
	}
}

func TestQuantity_ToMDUnitsIsIdempotent(t *testing.T) {
	reg := newRegistry(t)

	once, err := reg.MustQuantity(3.5, "kcal / mol / angstrom").ToMDUnits()
	require.NoError(t, err)
	twice, err := once.ToMDUnits()
	require.NoError(t, err)
	assert.Equal(t, once.Magnitude(), twice.Magnitude())
	assert.True(t, once.Units().Equal(twice.Units()))
}

func TestQuantity_ConvertToMDUnits(t *testing.T) {
	reg := newRegistry(t)

	q := reg.MustQuantity(10, "angstrom")
	require.NoError(t, q.ConvertToMDUnits())
	assert.InDelta(t, 1.0, q.Magnitude(), 1e-12)
	assert.Equal(t, "nanometer", q.Units().String())

	lum := reg.MustQuantity(3, "candela")
	err := lum.ConvertToMDUnits()
	require.ErrorIs(t, err, units.ErrUnsupportedDimension)
	assert.InDelta(t, 3.0, lum.Magnitude(), 0)
	assert.Equal(t, "candela", lum.Units().String())

	var zero units.Quantity
	require.ErrorIs(t, zero.ConvertToMDUnits(), units.ErrUnboundUnit)
}

func TestQuantity_To(t *testing.T) {
	reg := newRegistry(t)

	got, err := reg.MustQuantity(2, "hour").ToExpr("minute")
	require.NoError(t, err)
	assert.InDelta(t, 120.0, got.Magnitude(), 1e-12)

	got, err = reg.MustQuantity(77, "degF").ToExpr("degC")
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got.Magnitude(), 1e-9)

	got, err = reg.MustQuantity(0, "degC").ToExpr("degF")
	require.NoError(t, err)
	assert.InDelta(t, 32.0, got.Magnitude(), 1e-9)

	got, err = reg.MustQuantity(1, "atm").ToExpr("bar")
	require.NoError(t, err)
	assert.InDelta(t, 1.01325, got.Magnitude(), 1e-12)

	_, err = reg.MustQuantity(1, "meter").ToExpr("second")
	require.ErrorIs(t, err, units.ErrDimensionalityMismatch)

	_, err = reg.MustQuantity(1, "meter").ToExpr("furlong")
	require.ErrorIs(t, err, units.ErrUndefinedUnit)

	q := reg.MustQuantity(1.5, "nm")
	require.NoError(t, q.ConvertTo(reg.MustUnit("angstrom")))
	assert.InDelta(t, 15.0, q.Magnitude(), 1e-12)
	require.Error(t, q.ConvertTo(reg.MustUnit("kelvin")))
	assert.InDelta(t, 15.0, q.Magnitude(), 1e-12)
}

func TestQuantity_OffsetUnits(t *testing.T) {
	reg := newRegistry(t)

	_, err := reg.MustQuantity(1, "degC / second").ToMDUnits()
	require.ErrorIs(t, err, units.ErrOffsetUnitCalculus)

	_, err = reg.MustQuantity(1, "degC").Add(reg.MustQuantity(1, "degC"))
	require.ErrorIs(t, err, units.ErrOffsetUnitCalculus)

	_, err = reg.MustQuantity(2, "degC").Mul(reg.MustQuantity(1, "meter"))
	require.ErrorIs(t, err, units.ErrOffsetUnitCalculus)

	// Differences are expressed in the absolute scale.
	got, err := reg.MustQuantity(1, "K / s").ToExpr("mK / s")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, got.Magnitude(), 1e-9)
}

func TestQuantity_Arithmetic(t *testing.T) {
	reg := newRegistry(t)
	nm := reg.MustQuantity(1, "nm")
	ang := reg.MustQuantity(1, "angstrom")

	sum, err := nm.Add(ang)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, sum.Magnitude(), 1e-12)
	assert.Equal(t, "nanometer", sum.Units().String())

	diff, err := nm.Sub(ang)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, diff.Magnitude(), 1e-12)

	_, err = nm.Add(reg.MustQuantity(1, "ps"))
	require.ErrorIs(t, err, units.ErrDimensionalityMismatch)

	area, err := reg.MustQuantity(2, "nm").Mul(reg.MustQuantity(3, "nm"))
	require.NoError(t, err)
	assert.InDelta(t, 6.0, area.Magnitude(), 0)
	assert.Equal(t, "nanometer ** 2", area.Units().String())

	speed, err := reg.MustQuantity(10, "nm").Div(reg.MustQuantity(4, "ps"))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, speed.Magnitude(), 0)
	assert.Equal(t, "nanometer / picosecond", speed.Units().String())

	sq, err := reg.MustQuantity(3, "nm").Pow(units.IntExponent(2))
	require.NoError(t, err)
	assert.InDelta(t, 9.0, sq.Magnitude(), 1e-12)
	assert.Equal(t, "nanometer ** 2", sq.Units().String())

	root, err := sq.Pow(units.NewExponent(1, 2))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, root.Magnitude(), 1e-12)
	assert.Equal(t, "nanometer", root.Units().String())

	_, err = sq.Pow(units.IntExponent(1 << 20))
	require.ErrorIs(t, err, units.ErrInvalidExpression)

	assert.InDelta(t, 4.0, nm.Scale(4).Magnitude(), 0)
	assert.True(t, nm.Compatible(ang))
	assert.False(t, nm.Compatible(reg.MustQuantity(1, "K")))
}

func TestQuantity_RegistryMismatch(t *testing.T) {
	a := newRegistry(t)
	b := newRegistry(t)

	_, err := a.MustQuantity(1, "nm").Add(b.MustQuantity(1, "nm"))
	require.ErrorIs(t, err, units.ErrRegistryMismatch)

	_, err = a.MustQuantity(1, "nm").To(b.MustUnit("nm"))
	require.ErrorIs(t, err, units.ErrRegistryMismatch)

	_, err = a.MustQuantity(1, "nm").Mul(b.MustQuantity(1, "nm"))
	require.ErrorIs(t, err, units.ErrRegistryMismatch)

	assert.False(t, a.MustQuantity(1, "nm").Compatible(b.MustQuantity(1, "nm")))
}

func TestQuantity_ToBaseUnits(t *testing.T) {
	reg := newRegistry(t)

	got, err := reg.MustQuantity(1, "kJ").ToBaseUnits()
	require.NoError(t, err)
	assert.InEpsilon(t, 1e6, got.Magnitude(), 1e-12)
	assert.Equal(t, "gram * meter ** 2 / second ** 2", got.Units().String())
}

func TestQuantity_Format(t *testing.T) {
	reg := newRegistry(t)

	assert.Equal(t, "0.1 nanometer", reg.MustQuantity(0.1, "nm").String())
	assert.Equal(t, "0.333 nanometer", reg.MustQuantity(1.0/3.0, "nm").Format(3))
	assert.Equal(t, "1 kilojoule / mole", reg.MustQuantity(1, "kJ/mol").String())
}
