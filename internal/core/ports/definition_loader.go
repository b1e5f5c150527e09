package ports

import (
	"context"

	"go.trai.ch/mdunits/internal/core/domain"
)

// DefinitionLoader defines the interface for reading unit definition files.
//
//go:generate mockgen -source=definition_loader.go -destination=mocks/mock_definition_loader.go -package=mocks
type DefinitionLoader interface {
	// Load reads the defaults (embedded when defaultsPath is empty) followed by
	// every extra file, in order.
	Load(ctx context.Context, defaultsPath string, extra ...string) (*domain.DefinitionBundle, error)
}
