package domain

// PrefixDefinition declares a multiplicative unit prefix such as nano- (1e-9, n).
type PrefixDefinition struct {
	Name    string
	Symbol  string
	Aliases []string
	Factor  float64
}

// DimensionDefinition declares a derived dimension in terms of base dimensions,
// e.g. [velocity] = [length] / [time].
type DimensionDefinition struct {
	Name       Dimension
	Definition string
}

// UnitDefinition declares a unit. A base unit sets Dimension and leaves
// Definition empty; a derived unit gives a Definition expression over
// previously or subsequently declared units, optionally with an Offset
// (root = value * factor + offset).
type UnitDefinition struct {
	Name       string
	Symbol     string
	Aliases    []string
	Dimension  Dimension
	Definition string
	Offset     float64
}

// IsBase reports whether the unit defines a base dimension.
func (u UnitDefinition) IsBase() bool { return u.Dimension != "" }

// DefinitionSet is an ordered collection of definitions from one source.
type DefinitionSet struct {
	Source     string
	Prefixes   []PrefixDefinition
	Dimensions []DimensionDefinition
	Units      []UnitDefinition
}

// DefinitionBundle is the merged input a registry is built from. Sources are
// kept in load order; Fingerprint identifies the exact content.
type DefinitionBundle struct {
	Sets        []DefinitionSet
	Fingerprint string
}
