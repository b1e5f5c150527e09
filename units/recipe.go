package units

import (
	"encoding/json"

	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Kind marks which value type a recipe rebuilds.
type Kind string

// Recipe kinds.
const (
	KindUnit        Kind = "unit"
	KindQuantity    Kind = "quantity"
	KindMeasurement Kind = "measurement"
)

// Recipe is the reconstruction form of a Unit, Quantity or Measurement:
// a type marker, the raw magnitude, the unit expression and the
// fingerprint of the registry it came from.
type Recipe struct {
	Kind        Kind    `json:"kind" yaml:"kind"`
	Magnitude   float64 `json:"magnitude,omitempty" yaml:"magnitude,omitempty"`
	Uncertainty float64 `json:"uncertainty,omitempty" yaml:"uncertainty,omitempty"`
	Units       string  `json:"units" yaml:"units"`
	Registry    string  `json:"registry,omitempty" yaml:"registry,omitempty"`
}

// Recipe returns the reconstruction recipe of u.
func (u Unit) Recipe() Recipe {
	return Recipe{Kind: KindUnit, Units: u.String(), Registry: fingerprintOf(u.reg)}
}

// Recipe returns the reconstruction recipe of q.
func (q Quantity) Recipe() Recipe {
	return Recipe{Kind: KindQuantity, Magnitude: q.magnitude, Units: q.unit.String(), Registry: fingerprintOf(q.unit.reg)}
}

// Recipe returns the reconstruction recipe of m.
func (m Measurement) Recipe() Recipe {
	return Recipe{
		Kind:        KindMeasurement,
		Magnitude:   m.value,
		Uncertainty: m.uncertainty,
		Units:       m.unit.String(),
		Registry:    fingerprintOf(m.unit.reg),
	}
}

// Rebuild reconstructs the value described by rc against reg. The result
// is a Unit, Quantity or Measurement depending on rc.Kind.
func Rebuild(reg *Registry, rc Recipe) (any, error) {
	switch rc.Kind {
	case KindUnit:
		return RebuildUnit(reg, rc)
	case KindQuantity:
		return RebuildQuantity(reg, rc)
	case KindMeasurement:
		return RebuildMeasurement(reg, rc)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRecipe, "unknown recipe kind"), "kind", string(rc.Kind))
	}
}

// RebuildUnit reconstructs a Unit from rc against reg.
func RebuildUnit(reg *Registry, rc Recipe) (Unit, error) {
	if err := checkRecipe(reg, rc, KindUnit); err != nil {
		return Unit{}, err
	}
	u, err := reg.ParseUnit(rc.Units)
	if err != nil {
		return Unit{}, zerr.Wrap(err, "failed to rebuild unit")
	}
	return u, nil
}

// RebuildQuantity reconstructs a Quantity from rc against reg.
func RebuildQuantity(reg *Registry, rc Recipe) (Quantity, error) {
	if err := checkRecipe(reg, rc, KindQuantity); err != nil {
		return Quantity{}, err
	}
	u, err := reg.ParseUnit(rc.Units)
	if err != nil {
		return Quantity{}, zerr.Wrap(err, "failed to rebuild quantity")
	}
	return NewQuantity(rc.Magnitude, u), nil
}

// RebuildMeasurement reconstructs a Measurement from rc against reg.
func RebuildMeasurement(reg *Registry, rc Recipe) (Measurement, error) {
	if err := checkRecipe(reg, rc, KindMeasurement); err != nil {
		return Measurement{}, err
	}
	u, err := reg.ParseUnit(rc.Units)
	if err != nil {
		return Measurement{}, zerr.Wrap(err, "failed to rebuild measurement")
	}
	return NewMeasurement(rc.Magnitude, rc.Uncertainty, u), nil
}

func checkRecipe(reg *Registry, rc Recipe, want Kind) error {
	if reg == nil {
		return zerr.Wrap(domain.ErrUnboundUnit, "no registry to rebuild against")
	}
	if rc.Kind != want {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidRecipe, "unexpected recipe kind"), "kind", string(rc.Kind)), "want", string(want))
	}
	if rc.Registry != "" && rc.Registry != reg.fingerprint {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrRegistryMismatch, "recipe was made by a different registry"),
			"recipe_registry", rc.Registry), "registry", reg.fingerprint)
	}
	return nil
}

func fingerprintOf(r *Registry) string {
	if r == nil {
		return ""
	}
	return r.fingerprint
}

// MarshalJSON encodes u as its recipe.
func (u Unit) MarshalJSON() ([]byte, error) { return json.Marshal(u.Recipe()) }

// UnmarshalJSON rebuilds u against the default registry.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var rc Recipe
	if err := json.Unmarshal(data, &rc); err != nil {
		return zerr.Wrap(err, "failed to decode unit recipe")
	}
	out, err := RebuildUnit(Default(), rc)
	if err != nil {
		return err
	}
	*u = out
	return nil
}

// MarshalJSON encodes q as its recipe.
func (q Quantity) MarshalJSON() ([]byte, error) { return json.Marshal(q.Recipe()) }

// UnmarshalJSON rebuilds q against the default registry.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var rc Recipe
	if err := json.Unmarshal(data, &rc); err != nil {
		return zerr.Wrap(err, "failed to decode quantity recipe")
	}
	out, err := RebuildQuantity(Default(), rc)
	if err != nil {
		return err
	}
	*q = out
	return nil
}

// MarshalJSON encodes m as its recipe.
func (m Measurement) MarshalJSON() ([]byte, error) { return json.Marshal(m.Recipe()) }

// UnmarshalJSON rebuilds m against the default registry.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	var rc Recipe
	if err := json.Unmarshal(data, &rc); err != nil {
		return zerr.Wrap(err, "failed to decode measurement recipe")
	}
	out, err := RebuildMeasurement(Default(), rc)
	if err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalYAML encodes u as its recipe.
func (u Unit) MarshalYAML() (any, error) { return u.Recipe(), nil }

// UnmarshalYAML rebuilds u against the default registry.
func (u *Unit) UnmarshalYAML(value *yaml.Node) error {
	var rc Recipe
	if err := value.Decode(&rc); err != nil {
		return zerr.Wrap(err, "failed to decode unit recipe")
	}
	out, err := RebuildUnit(Default(), rc)
	if err != nil {
		return err
	}
	*u = out
	return nil
}

// MarshalYAML encodes q as its recipe.
func (q Quantity) MarshalYAML() (any, error) { return q.Recipe(), nil }

// UnmarshalYAML rebuilds q against the default registry.
func (q *Quantity) UnmarshalYAML(value *yaml.Node) error {
	var rc Recipe
	if err := value.Decode(&rc); err != nil {
		return zerr.Wrap(err, "failed to decode quantity recipe")
	}
	out, err := RebuildQuantity(Default(), rc)
	if err != nil {
		return err
	}
	*q = out
	return nil
}

// MarshalYAML encodes m as its recipe.
func (m Measurement) MarshalYAML() (any, error) { return m.Recipe(), nil }

// UnmarshalYAML rebuilds m against the default registry.
func (m *Measurement) UnmarshalYAML(value *yaml.Node) error {
	var rc Recipe
	if err := value.Decode(&rc); err != nil {
		return zerr.Wrap(err, "failed to decode measurement recipe")
	}
	out, err := RebuildMeasurement(Default(), rc)
	if err != nil {
		return err
	}
	*m = out
	return nil
}
