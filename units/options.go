package units

import (
	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/mdunits/internal/core/ports"
)

type options struct {
	logger       ports.Logger
	loader       ports.DefinitionLoader
	defaultsPath string
	extra        []string
	bundle       *domain.DefinitionBundle
}

// Option configures NewRegistry.
type Option func(*options)

// WithLogger routes registry diagnostics, including each dimension visited
// while resolving canonical units, to l at debug level.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDefinitionsFile replaces the embedded defaults with the file at path.
func WithDefinitionsFile(path string) Option {
	return func(o *options) { o.defaultsPath = path }
}

// WithExtraDefinitions appends definition files, applied in order after the defaults.
func WithExtraDefinitions(paths ...string) Option {
	return func(o *options) { o.extra = append(o.extra, paths...) }
}

// WithDefinitionLoader overrides how definition files are read.
func WithDefinitionLoader(l ports.DefinitionLoader) Option {
	return func(o *options) { o.loader = l }
}

// WithBundle builds the registry from already parsed definitions; file
// options are ignored.
func WithBundle(b *DefinitionBundle) Option {
	return func(o *options) { o.bundle = b }
}
