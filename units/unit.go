package units

import (
	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/zerr"
)

// Unit is a product of registry units raised to rational powers. The zero
// value is an unbound dimensionless unit; most operations on it fail with
// ErrUnboundUnit.
type Unit struct {
	reg   *Registry
	units domain.UnitsContainer
	dims  domain.Dimensionality
}

// Registry returns the registry the unit belongs to.
func (u Unit) Registry() *Registry { return u.reg }

// Container returns a copy of the unit's name→exponent decomposition.
func (u Unit) Container() UnitsContainer { return u.units.Clone() }

// Dimensionality returns a copy of the unit's decomposition into base dimensions.
func (u Unit) Dimensionality() Dimensionality { return u.dims.Clone() }

// IsDimensionless reports whether the unit has no dimension.
func (u Unit) IsDimensionless() bool { return u.dims.IsEmpty() }

// String formats the unit as "nanometer ** 2 / picosecond".
func (u Unit) String() string { return u.units.Format(domain.DimensionlessName) }

// Equal reports whether u and o are the same unit of the same registry.
func (u Unit) Equal(o Unit) bool {
	return u.reg == o.reg && u.units.Equal(o.units)
}

// Compatible reports whether u and o belong to the same registry and share a dimensionality.
func (u Unit) Compatible(o Unit) bool {
	return u.reg != nil && u.reg == o.reg && u.dims.Equal(o.dims)
}

// Mul returns u * o.
func (u Unit) Mul(o Unit) (Unit, error) {
	if err := sameRegistry(u.reg, o.reg); err != nil {
		return Unit{}, err
	}
	return Unit{reg: u.reg, units: u.units.Mul(o.units), dims: u.dims.Mul(o.dims)}, nil
}

// Div returns u / o.
func (u Unit) Div(o Unit) (Unit, error) {
	if err := sameRegistry(u.reg, o.reg); err != nil {
		return Unit{}, err
	}
	return Unit{reg: u.reg, units: u.units.Div(o.units), dims: u.dims.Div(o.dims)}, nil
}

// Pow returns u ** e.
func (u Unit) Pow(e Exponent) Unit {
	return Unit{reg: u.reg, units: u.units.Pow(e), dims: u.dims.Pow(e)}
}

// CompatibleMDUnits returns the molecular-dynamics unit with the same
// dimensionality as u.
func (u Unit) CompatibleMDUnits() (Unit, error) {
	if u.reg == nil {
		return Unit{}, zerr.Wrap(domain.ErrUnboundUnit, "cannot resolve canonical units")
	}
	return u.reg.md.Resolve(u.dims)
}

// sameRegistry fails unless a and b are the same non-nil registry.
func sameRegistry(a, b *Registry) error {
	if a == nil || b == nil {
		return zerr.Wrap(domain.ErrUnboundUnit, "value has no registry")
	}
	if a != b {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrRegistryMismatch, "cannot combine values from different registries"),
			"registry", a.fingerprint), "other_registry", b.fingerprint)
	}
	return nil
}
