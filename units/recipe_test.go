package units_test

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mdunits/units"
	"gopkg.in/yaml.v3"
)

func TestRecipe_QuantityRoundTrip(t *testing.T) {
	reg := newRegistry(t)
	q := reg.MustQuantity(5, "meter")

	rc := q.Recipe()
	assert.Equal(t, units.Recipe{
		Kind:      units.KindQuantity,
		Magnitude: 5,
		Units:     "meter",
		Registry:  reg.Fingerprint(),
	}, rc)

	got, err := units.RebuildQuantity(reg, rc)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got.Magnitude(), 0)
	assert.True(t, got.Units().Equal(q.Units()))
}

func TestRecipe_Rebuild(t *testing.T) {
	reg := newRegistry(t)

	v, err := units.Rebuild(reg, reg.MustUnit("kJ/mol").Recipe())
	require.NoError(t, err)
	u, ok := v.(units.Unit)
	require.True(t, ok)
	assert.Equal(t, "kilojoule / mole", u.String())

	m, err := reg.Measurement(1.5, 0.25, "nm")
	require.NoError(t, err)
	v, err = units.Rebuild(reg, m.Recipe())
	require.NoError(t, err)
	got, ok := v.(units.Measurement)
	require.True(t, ok)
	assert.Equal(t, "(1.5 +/- 0.25) nanometer", got.String())

	_, err = units.Rebuild(reg, units.Recipe{Kind: "teapot", Units: "meter"})
	require.ErrorIs(t, err, units.ErrInvalidRecipe)
}

func TestRecipe_Errors(t *testing.T) {
	reg := newRegistry(t)

	_, err := units.RebuildUnit(reg, reg.MustQuantity(1, "nm").Recipe())
	require.ErrorIs(t, err, units.ErrInvalidRecipe)

	_, err = units.RebuildQuantity(reg, units.Recipe{Kind: units.KindQuantity, Magnitude: 1, Units: "furlong"})
	require.ErrorIs(t, err, units.ErrUndefinedUnit)

	_, err = units.RebuildQuantity(nil, reg.MustQuantity(1, "nm").Recipe())
	require.ErrorIs(t, err, units.ErrUnboundUnit)

	// Recipes without a fingerprint rebuild against any registry.
	got, err := units.RebuildQuantity(reg, units.Recipe{Kind: units.KindQuantity, Magnitude: 2, Units: "ps"})
	require.NoError(t, err)
	assert.Equal(t, "2 picosecond", got.String())
}

func TestRecipe_DifferentDefinitions(t *testing.T) {
	reg := newRegistry(t)
	other := newRegistry(t, units.WithExtraDefinitions(writeDefinitions(t, `version: "1"
units:
  - {name: furlong, definition: "201.168 * meter"}
`)))

	_, err := units.RebuildQuantity(other, reg.MustQuantity(5, "meter").Recipe())
	require.ErrorIs(t, err, units.ErrRegistryMismatch)

	// A registry built from the same definitions is accepted.
	same := newRegistry(t)
	got, err := units.RebuildQuantity(same, reg.MustQuantity(5, "meter").Recipe())
	require.NoError(t, err)
	assert.Same(t, same, got.Units().Registry())
}

func TestRecipe_JSON(t *testing.T) {
	reg := units.Default()

	q := reg.MustQuantity(0.5, "nm / ps")
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"quantity","magnitude":0.5,"units":"nanometer / picosecond","registry":"`+reg.Fingerprint()+`"}`, string(data))

	var got units.Quantity
	require.NoError(t, json.Unmarshal(data, &got))
	assert.InDelta(t, 0.5, got.Magnitude(), 0)
	assert.True(t, got.Units().Equal(q.Units()))

	var u units.Unit
	data, err = json.Marshal(reg.MustUnit("K"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &u))
	assert.Equal(t, "kelvin", u.String())

	require.Error(t, json.Unmarshal([]byte(`{"kind":"unit","units":"meter"}`), &got))
	require.Error(t, json.Unmarshal([]byte(`[1, 2]`), &got))
}

func TestRecipe_YAML(t *testing.T) {
	reg := units.Default()

	m, err := reg.Measurement(300, 1.5, "K")
	require.NoError(t, err)
	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: measurement")

	var got units.Measurement
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, m.String(), got.String())

	type doc struct {
		Temperature units.Quantity `yaml:"temperature"`
	}
	var d doc
	require.NoError(t, yaml.Unmarshal([]byte("temperature: {kind: quantity, magnitude: 25, units: degree_Celsius}\n"), &d))
	k, err := d.Temperature.ToMDUnits()
	require.NoError(t, err)
	assert.InDelta(t, 298.15, k.Magnitude(), 1e-9)
}

func TestToken(t *testing.T) {
	reg := newRegistry(t)
	q := reg.MustQuantity(1, "nm")
	hex := regexp.MustCompile(`^[0-9a-f]{32}$`)

	a, b := q.Token(), q.Token()
	assert.Regexp(t, hex, a)
	assert.NotEqual(t, a, b)

	m := units.NewMeasurement(1, 0.1, q.Units())
	assert.Regexp(t, hex, m.Token())
	assert.NotEqual(t, m.Token(), m.Token())
}
