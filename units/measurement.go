package units

import (
	"math"
	"strconv"
)

// Measurement is a value with a standard uncertainty and a unit.
type Measurement struct {
	value       float64
	uncertainty float64
	unit        Unit
}

// NewMeasurement returns value ± uncertainty in u. The uncertainty is stored as an absolute value.
func NewMeasurement(value, uncertainty float64, u Unit) Measurement {
	return Measurement{value: value, uncertainty: math.Abs(uncertainty), unit: u}
}

// Magnitude returns the nominal value in the measurement's own units.
func (m Measurement) Magnitude() float64 { return m.value }

// Uncertainty returns the standard uncertainty in the measurement's own units.
func (m Measurement) Uncertainty() float64 { return m.uncertainty }

// RelativeUncertainty returns uncertainty / |value|, or +Inf for a zero value.
func (m Measurement) RelativeUncertainty() float64 {
	if m.value == 0 {
		return math.Inf(1)
	}
	return m.uncertainty / math.Abs(m.value)
}

// Units returns the measurement's unit.
func (m Measurement) Units() Unit { return m.unit }

// Value returns the nominal value as a Quantity.
func (m Measurement) Value() Quantity { return NewQuantity(m.value, m.unit) }

// String formats the measurement as "(1 +/- 0.1) nanometer".
func (m Measurement) String() string { return m.Format(-1) }

// Format renders value and uncertainty with prec significant digits.
func (m Measurement) Format(prec int) string {
	return "(" + strconv.FormatFloat(m.value, 'g', prec, 64) + " +/- " +
		strconv.FormatFloat(m.uncertainty, 'g', prec, 64) + ") " + m.unit.String()
}

// To returns m expressed in u. The uncertainty scales linearly; offsets
// only shift the value.
func (m Measurement) To(u Unit) (Measurement, error) {
	v, scale, err := convert(m.value, m.unit, u)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{value: v, uncertainty: m.uncertainty * math.Abs(scale), unit: u}, nil
}

// ConvertTo converts m to u in place. On error m is unchanged.
func (m *Measurement) ConvertTo(u Unit) error {
	converted, err := m.To(u)
	if err != nil {
		return err
	}
	*m = converted
	return nil
}

// ToMDUnits returns m expressed in molecular-dynamics units.
func (m Measurement) ToMDUnits() (Measurement, error) {
	target, err := m.unit.CompatibleMDUnits()
	if err != nil {
		return Measurement{}, err
	}
	return m.To(target)
}

// ConvertToMDUnits converts m to molecular-dynamics units in place. On
// error m is unchanged.
func (m *Measurement) ConvertToMDUnits() error {
	converted, err := m.ToMDUnits()
	if err != nil {
		return err
	}
	*m = converted
	return nil
}

// Scale multiplies value and uncertainty by f.
func (m Measurement) Scale(f float64) Measurement {
	return Measurement{value: m.value * f, uncertainty: m.uncertainty * math.Abs(f), unit: m.unit}
}

// Add returns m + o in m's units, combining uncertainties in quadrature.
func (m Measurement) Add(o Measurement) (Measurement, error) {
	return m.addScaled(o, 1)
}

// Sub returns m - o in m's units, combining uncertainties in quadrature.
func (m Measurement) Sub(o Measurement) (Measurement, error) {
	return m.addScaled(o, -1)
}

func (m Measurement) addScaled(o Measurement, sign float64) (Measurement, error) {
	if err := sameRegistry(m.unit.reg, o.unit.reg); err != nil {
		return Measurement{}, err
	}
	if err := m.unit.reg.requireMultiplicative(m.unit, o.unit); err != nil {
		return Measurement{}, err
	}
	converted, err := o.To(m.unit)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{
		value:       m.value + sign*converted.value,
		uncertainty: math.Hypot(m.uncertainty, converted.uncertainty),
		unit:        m.unit,
	}, nil
}

// Mul returns m * o, combining relative uncertainties in quadrature.
func (m Measurement) Mul(o Measurement) (Measurement, error) {
	u, err := m.unit.Mul(o.unit)
	if err != nil {
		return Measurement{}, err
	}
	if err := m.unit.reg.requireMultiplicative(m.unit, o.unit); err != nil {
		return Measurement{}, err
	}
	v := m.value * o.value
	// d(ab) = sqrt((b·da)² + (a·db)²), which stays finite when a or b is zero.
	unc := math.Hypot(o.value*m.uncertainty, m.value*o.uncertainty)
	return Measurement{value: v, uncertainty: unc, unit: u}, nil
}
