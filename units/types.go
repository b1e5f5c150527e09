package units

import (
	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/mdunits/internal/core/ports"
)

type (
	// Dimension is a base dimension symbol such as "[length]".
	Dimension = domain.Dimension
	// Dimensionality maps base dimensions to rational exponents.
	Dimensionality = domain.Dimensionality
	// Exponent is an exact rational power.
	Exponent = domain.Exponent
	// UnitsContainer maps canonical unit names to rational exponents.
	UnitsContainer = domain.UnitsContainer
	// DefinitionBundle is the parsed input a registry is built from.
	DefinitionBundle = domain.DefinitionBundle
	// Logger receives registry diagnostics.
	Logger = ports.Logger
)

// Base dimensions.
const (
	Length      = domain.DimLength
	Mass        = domain.DimMass
	Time        = domain.DimTime
	Temperature = domain.DimTemperature
	Substance   = domain.DimSubstance
	Current     = domain.DimCurrent
	Luminosity  = domain.DimLuminosity
)

// Errors returned by this package. Match them with errors.Is.
var (
	ErrUnsupportedDimension   = domain.ErrUnsupportedDimension
	ErrRegistryMismatch       = domain.ErrRegistryMismatch
	ErrUnboundUnit            = domain.ErrUnboundUnit
	ErrUndefinedUnit          = domain.ErrUndefinedUnit
	ErrInvalidExpression      = domain.ErrInvalidExpression
	ErrDimensionalityMismatch = domain.ErrDimensionalityMismatch
	ErrOffsetUnitCalculus     = domain.ErrOffsetUnitCalculus
	ErrMalformedDefinitions   = domain.ErrMalformedDefinitions
	ErrDuplicateDefinition    = domain.ErrDuplicateDefinition
	ErrDefinitionCycle        = domain.ErrDefinitionCycle
	ErrInvalidRecipe          = domain.ErrInvalidRecipe
	ErrNonIntegerExponent     = domain.ErrNonIntegerExponent
)

// NewExponent returns the exponent num/den in lowest terms.
func NewExponent(num, den int64) Exponent { return domain.NewExponent(num, den) }

// IntExponent returns the integer exponent n.
func IntExponent(n int64) Exponent { return domain.Int(n) }
