package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedDimension is returned when a dimension has no entry in a canonical unit table.
	ErrUnsupportedDimension = zerr.New("unsupported dimension")

	// ErrRegistryMismatch is returned when values built from different registries are combined.
	ErrRegistryMismatch = zerr.New("values belong to different unit registries")

	// ErrUnboundUnit is returned when a zero-value unit without a registry is used.
	ErrUnboundUnit = zerr.New("unit is not bound to a registry")

	// ErrUndefinedUnit is returned when a unit name cannot be found in the registry.
	ErrUndefinedUnit = zerr.New("undefined unit")

	// ErrInvalidExpression is returned when a unit or quantity expression cannot be parsed.
	ErrInvalidExpression = zerr.New("invalid unit expression")

	// ErrDimensionalityMismatch is returned when converting between incompatible units.
	ErrDimensionalityMismatch = zerr.New("dimensionality mismatch")

	// ErrOffsetUnitCalculus is returned when an offset unit (e.g. degC) is used in a compound expression.
	ErrOffsetUnitCalculus = zerr.New("ambiguous operation with offset unit")

	// ErrMalformedDefinitions is returned when a definitions file cannot be parsed.
	ErrMalformedDefinitions = zerr.New("malformed definitions")

	// ErrDuplicateDefinition is returned when a unit, prefix or dimension is defined twice.
	ErrDuplicateDefinition = zerr.New("duplicate definition")

	// ErrDefinitionCycle is returned when unit definitions refer to each other in a cycle.
	ErrDefinitionCycle = zerr.New("cyclic unit definition")

	// ErrInvalidRecipe is returned when a reconstruction recipe cannot be rebuilt.
	ErrInvalidRecipe = zerr.New("invalid reconstruction recipe")

	// ErrNonIntegerExponent is returned when a fractional exponent cannot be represented by the target.
	ErrNonIntegerExponent = zerr.New("non-integer exponent")

	// ErrNotInitialized is returned when the application is used before Init.
	ErrNotInitialized = zerr.New("application not initialized")
)
