package domain

// Config is the mdunits CLI configuration.
type Config struct {
	// DefaultsPath replaces the embedded definitions when non-empty.
	DefaultsPath string
	// ExtraDefinitions are applied after the defaults, in order.
	ExtraDefinitions []string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// Precision is the number of significant digits printed, 0 for the shortest form.
	Precision int
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{LogLevel: "info"}
}
