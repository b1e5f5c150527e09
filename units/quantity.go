package units

import (
	"strconv"

	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/zerr"
)

// Quantity is a magnitude with a unit.
type Quantity struct {
	magnitude float64
	unit      Unit
}

// NewQuantity returns magnitude expressed in u. The quantity belongs to u's registry.
func NewQuantity(magnitude float64, u Unit) Quantity {
	return Quantity{magnitude: magnitude, unit: u}
}

// Magnitude returns the raw number in the quantity's own units.
func (q Quantity) Magnitude() float64 { return q.magnitude }

// Units returns the quantity's unit.
func (q Quantity) Units() Unit { return q.unit }

// Dimensionality returns the dimensionality of the quantity's unit.
func (q Quantity) Dimensionality() Dimensionality { return q.unit.Dimensionality() }

// Compatible reports whether q can be converted to the units of o.
func (q Quantity) Compatible(o Quantity) bool { return q.unit.Compatible(o.unit) }

// String formats the quantity as "0.1 nanometer".
func (q Quantity) String() string { return q.Format(-1) }

// Format renders the magnitude with prec significant digits (-1 for the
// shortest exact representation) followed by the unit.
func (q Quantity) Format(prec int) string {
	return strconv.FormatFloat(q.magnitude, 'g', prec, 64) + " " + q.unit.String()
}

// To returns q expressed in u. q is not modified.
func (q Quantity) To(u Unit) (Quantity, error) {
	v, _, err := convert(q.magnitude, q.unit, u)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: v, unit: u}, nil
}

// ToExpr returns q expressed in the unit parsed from expr.
func (q Quantity) ToExpr(expr string) (Quantity, error) {
	if q.unit.reg == nil {
		return Quantity{}, zerr.Wrap(domain.ErrUnboundUnit, "cannot convert quantity")
	}
	u, err := q.unit.reg.ParseUnit(expr)
	if err != nil {
		return Quantity{}, err
	}
	return q.To(u)
}

// ConvertTo converts q to u in place. On error q is unchanged.
func (q *Quantity) ConvertTo(u Unit) error {
	converted, err := q.To(u)
	if err != nil {
		return err
	}
	*q = converted
	return nil
}

// ToMDUnits returns q expressed in molecular-dynamics units
// (nm, u, ps, K, mol, e/ps). q is not modified.
func (q Quantity) ToMDUnits() (Quantity, error) {
	target, err := q.unit.CompatibleMDUnits()
	if err != nil {
		return Quantity{}, err
	}
	return q.To(target)
}

// ConvertToMDUnits converts q to molecular-dynamics units in place. On
// error q is unchanged.
func (q *Quantity) ConvertToMDUnits() error {
	converted, err := q.ToMDUnits()
	if err != nil {
		return err
	}
	*q = converted
	return nil
}

// ToBaseUnits returns q expressed in the registry's base units.
func (q Quantity) ToBaseUnits() (Quantity, error) {
	if q.unit.reg == nil {
		return Quantity{}, zerr.Wrap(domain.ErrUnboundUnit, "cannot convert quantity")
	}
	ev, err := q.unit.reg.evaluate(q.unit.units)
	if err != nil {
		return Quantity{}, err
	}
	base, err := q.unit.reg.newUnit(ev.root)
	if err != nil {
		return Quantity{}, err
	}
	return q.To(base)
}

// Scale returns q multiplied by a plain number.
func (q Quantity) Scale(f float64) Quantity {
	return Quantity{magnitude: q.magnitude * f, unit: q.unit}
}

// Add returns q + o in q's units.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	return q.addScaled(o, 1)
}

// Sub returns q - o in q's units.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	return q.addScaled(o, -1)
}

func (q Quantity) addScaled(o Quantity, sign float64) (Quantity, error) {
	if err := sameRegistry(q.unit.reg, o.unit.reg); err != nil {
		return Quantity{}, err
	}
	if err := q.unit.reg.requireMultiplicative(q.unit, o.unit); err != nil {
		return Quantity{}, err
	}
	v, _, err := convert(o.magnitude, o.unit, q.unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: q.magnitude + sign*v, unit: q.unit}, nil
}

// Mul returns q * o.
func (q Quantity) Mul(o Quantity) (Quantity, error) {
	u, err := q.unit.Mul(o.unit)
	if err != nil {
		return Quantity{}, err
	}
	if err := q.unit.reg.requireMultiplicative(q.unit, o.unit); err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: q.magnitude * o.magnitude, unit: u}, nil
}

// Div returns q / o.
func (q Quantity) Div(o Quantity) (Quantity, error) {
	u, err := q.unit.Div(o.unit)
	if err != nil {
		return Quantity{}, err
	}
	if err := q.unit.reg.requireMultiplicative(q.unit, o.unit); err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: q.magnitude / o.magnitude, unit: u}, nil
}

// Pow returns q ** e.
func (q Quantity) Pow(e Exponent) (Quantity, error) {
	if q.unit.reg != nil {
		if err := q.unit.reg.requireMultiplicative(q.unit); err != nil {
			return Quantity{}, err
		}
	}
	if !e.InRange() || !q.unit.units.InRange() {
		return Quantity{}, zerr.With(zerr.Wrap(domain.ErrInvalidExpression, "exponent out of range"), "exponent", e.String())
	}
	u := q.unit.Pow(e)
	if !u.units.InRange() {
		return Quantity{}, zerr.With(zerr.Wrap(domain.ErrInvalidExpression, "exponent out of range"), "exponent", e.String())
	}
	return Quantity{magnitude: e.Pow(q.magnitude), unit: u}, nil
}

// convert re-expresses magnitude m from one unit to another. It returns the
// converted value and the linear scale between the two units.
func convert(m float64, from, to Unit) (float64, float64, error) {
	if err := sameRegistry(from.reg, to.reg); err != nil {
		return 0, 0, err
	}
	if !from.dims.Equal(to.dims) {
		return 0, 0, zerr.With(zerr.With(zerr.Wrap(domain.ErrDimensionalityMismatch, "cannot convert between units"),
			"from", from.String()+" ("+from.dims.Format(domain.DimensionlessName)+")"), "to", to.String()+" ("+to.dims.Format(domain.DimensionlessName)+")")
	}
	if from.units.Equal(to.units) {
		return m, 1, nil
	}
	src, err := from.reg.evaluate(from.units)
	if err != nil {
		return 0, 0, err
	}
	dst, err := to.reg.evaluate(to.units)
	if err != nil {
		return 0, 0, err
	}
	root := m*src.factor + src.offset
	return (root - dst.offset) / dst.factor, src.factor / dst.factor, nil
}

// requireMultiplicative fails if any unit is an offset unit, for which
// products and sums are ambiguous.
func (r *Registry) requireMultiplicative(units ...Unit) error {
	for _, u := range units {
		ev, err := r.evaluate(u.units)
		if err != nil {
			return err
		}
		if ev.hasOffset {
			return zerr.With(zerr.Wrap(domain.ErrOffsetUnitCalculus, "arithmetic on an offset unit"), "unit", u.String())
		}
	}
	return nil
}
