package domain

import "strings"

// Dimension is a base physical dimension symbol such as "[length]".
type Dimension string

// Base dimensions known to the default definitions.
const (
	DimLength      Dimension = "[length]"
	DimMass        Dimension = "[mass]"
	DimTime        Dimension = "[time]"
	DimTemperature Dimension = "[temperature]"
	DimSubstance   Dimension = "[substance]"
	DimCurrent     Dimension = "[current]"
	DimLuminosity  Dimension = "[luminosity]"
)

// Valid reports whether d has the bracketed "[name]" form.
func (d Dimension) Valid() bool {
	s := string(d)
	if len(s) < 3 || !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return false
	}
	for _, r := range s[1 : len(s)-1] {
		if r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Dimensionality is a unit's decomposition into base dimensions.
type Dimensionality = Powers[Dimension]

// UnitName is the canonical name of a unit in a registry, e.g. "nanometer".
type UnitName string

// UnitsContainer is a product of named units raised to exponents.
type UnitsContainer = Powers[UnitName]

// DimensionlessName is how the empty units container is written.
const DimensionlessName = "dimensionless"
