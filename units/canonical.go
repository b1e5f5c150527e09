package units

import (
	"slices"

	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/zerr"
)

// MDUnitExpressions is the molecular-dynamics unit for each supported base dimension.
var MDUnitExpressions = map[Dimension]string{
	Length:      "nanometer",
	Mass:        "unified_atomic_mass_unit",
	Temperature: "kelvin",
	Time:        "picosecond",
	Substance:   "mole",
	Current:     "elementary_charge / picosecond",
}

// Table maps base dimensions to one canonical unit each. It is built once
// from a registry and never changes afterwards.
type Table struct {
	reg   *Registry
	units map[Dimension]Unit
}

// NewTable looks up every expression in reg. Each unit must have exactly
// the dimensionality of the dimension it stands for.
func NewTable(reg *Registry, exprs map[Dimension]string) (*Table, error) {
	t := &Table{reg: reg, units: make(map[Dimension]Unit, len(exprs))}
	for dim, expr := range exprs {
		u, err := reg.ParseUnit(expr)
		if err != nil {
			return nil, zerr.With(err, "dimension", string(dim))
		}
		if want := domain.Single(dim, domain.Int(1)); !u.dims.Equal(want) {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrDimensionalityMismatch, "canonical unit does not match its dimension"),
				"dimension", string(dim)), "unit", u.String())
		}
		t.units[dim] = u
	}
	return t, nil
}

// Lookup returns the canonical unit for d.
func (t *Table) Lookup(d Dimension) (Unit, bool) {
	u, ok := t.units[d]
	return u, ok
}

// Dimensions returns the supported dimensions, sorted.
func (t *Table) Dimensions() []Dimension {
	dims := make([]Dimension, 0, len(t.units))
	for d := range t.units {
		dims = append(dims, d)
	}
	slices.Sort(dims)
	return dims
}

// Units returns a copy of the dimension→unit mapping.
func (t *Table) Units() map[Dimension]Unit {
	out := make(map[Dimension]Unit, len(t.units))
	for d, u := range t.units {
		out[d] = u
	}
	return out
}

// Registry returns the registry the table was built from.
func (t *Table) Registry() *Registry { return t.reg }

// Resolve returns the product of the canonical unit of every dimension in
// dims raised to its exponent. The empty dimensionality resolves to the
// dimensionless unit. Any dimension without a canonical unit fails with
// ErrUnsupportedDimension.
func (t *Table) Resolve(dims Dimensionality) (Unit, error) {
	out := domain.UnitsContainer{}
	for _, it := range dims.Items() {
		canonical, ok := t.units[it.Key]
		if !ok {
			return Unit{}, zerr.With(zerr.Wrap(domain.ErrUnsupportedDimension, "no canonical unit for dimension"),
				"dimension", string(it.Key))
		}
		t.reg.logger.Debug("resolving dimension", "dimension", string(it.Key), "exponent", it.Exponent.String())
		out = out.Mul(canonical.units.Pow(it.Exponent))
	}
	return Unit{reg: t.reg, units: out, dims: dims.Clone()}, nil
}

// ResolveUnit resolves the dimensionality of u, which must come from the
// table's registry.
func (t *Table) ResolveUnit(u Unit) (Unit, error) {
	if err := sameRegistry(t.reg, u.reg); err != nil {
		return Unit{}, err
	}
	return t.Resolve(u.dims)
}
