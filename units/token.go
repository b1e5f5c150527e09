package units

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// newToken returns a random 32-character hex string.
func newToken() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Token returns a fresh random identity token on every call, so task-graph
// frameworks never deduplicate two computations on quantities.
func (q Quantity) Token() string { return newToken() }

// Token returns a fresh random identity token on every call.
func (m Measurement) Token() string { return newToken() }
