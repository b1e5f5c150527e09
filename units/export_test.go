package units

import "sync"

// ResetDefault forgets the process-wide registry so tests can install their own.
func ResetDefault() {
	defaultRegistry = nil
	defaultOnce = sync.Once{}
}
