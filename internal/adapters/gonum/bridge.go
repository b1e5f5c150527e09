// Package gonum converts quantities to and from gonum.org/v1/gonum/unit values.
package gonum

import (
	"go.trai.ch/mdunits/units"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/unit"
)

// SIUnitExpressions is the SI base unit for each dimension gonum understands.
var SIUnitExpressions = map[units.Dimension]string{
	units.Length:      "meter",
	units.Mass:        "kilogram",
	units.Time:        "second",
	units.Temperature: "kelvin",
	units.Substance:   "mole",
	units.Current:     "ampere",
	units.Luminosity:  "candela",
}

var toGonum = map[units.Dimension]unit.Dimension{
	units.Length:      unit.LengthDim,
	units.Mass:        unit.MassDim,
	units.Time:        unit.TimeDim,
	units.Temperature: unit.TemperatureDim,
	units.Substance:   unit.MoleDim,
	units.Current:     unit.CurrentDim,
	units.Luminosity:  unit.LuminousIntensityDim,
}

// Bridge converts between one registry and gonum's SI representation.
type Bridge struct {
	reg   *units.Registry
	si    *units.Table
	angle units.Unit
	byDim map[unit.Dimension]units.Unit
}

// NewBridge builds the SI table for reg.
func NewBridge(reg *units.Registry) (*Bridge, error) {
	si, err := units.NewTable(reg, SIUnitExpressions)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build SI unit table")
	}
	angle, err := reg.ParseUnit("radian")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to look up radian")
	}
	b := &Bridge{reg: reg, si: si, angle: angle, byDim: make(map[unit.Dimension]units.Unit, len(toGonum))}
	for dim, gd := range toGonum {
		u, _ := si.Lookup(dim)
		b.byDim[gd] = u
	}
	return b, nil
}

// ToGonum re-expresses q in SI base units as a gonum unit value.
func (b *Bridge) ToGonum(q units.Quantity) (*unit.Unit, error) {
	target, err := b.si.ResolveUnit(q.Units())
	if err != nil {
		return nil, err
	}
	si, err := q.To(target)
	if err != nil {
		return nil, err
	}
	dims := make(unit.Dimensions)
	for _, it := range q.Dimensionality().Items() {
		if !it.Exponent.IsInteger() {
			return nil, zerr.With(zerr.With(zerr.Wrap(units.ErrNonIntegerExponent, "gonum units need integer exponents"),
				"dimension", string(it.Key)), "exponent", it.Exponent.String())
		}
		dims[toGonum[it.Key]] = int(it.Exponent.Num())
	}
	return unit.New(si.Magnitude(), dims), nil
}

// FromGonum builds a quantity in SI base units from a gonum value. Angles
// become radians.
func (b *Bridge) FromGonum(v unit.Uniter) (units.Quantity, error) {
	gu := v.Unit()
	out := b.reg.Dimensionless()
	for gd, pow := range gu.Dimensions() {
		base, ok := b.byDim[gd]
		if gd == unit.AngleDim {
			base, ok = b.angle, true
		}
		if !ok {
			return units.Quantity{}, zerr.With(zerr.Wrap(units.ErrUnsupportedDimension, "gonum dimension has no SI unit"), "dimension", gd.String())
		}
		var err error
		out, err = out.Mul(base.Pow(units.IntExponent(int64(pow))))
		if err != nil {
			return units.Quantity{}, err
		}
	}
	return units.NewQuantity(gu.Value(), out), nil
}
