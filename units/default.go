package units

import (
	"sync"

	"go.trai.ch/zerr"
)

// Process-wide registry and initialization guard.
var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, building it from the embedded
// defaults on first use. Values decoded from JSON or YAML are rebuilt
// against it. Default panics if the embedded defaults are malformed.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry()
		if err != nil {
			panic(zerr.Wrap(err, "failed to build default unit registry"))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// SetDefault installs r as the process-wide registry. It only takes effect
// before the first call to Default and reports whether it did. A nil
// registry is rejected and leaves the default untouched.
func SetDefault(r *Registry) bool {
	if r == nil {
		return false
	}
	applied := false
	defaultOnce.Do(func() {
		defaultRegistry = r
		applied = true
	})
	return applied
}
