// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mdunits/internal/adapters/config"
	_ "go.trai.ch/mdunits/internal/adapters/definitions"
	_ "go.trai.ch/mdunits/internal/adapters/logger"
	// Register app nodes.
	_ "go.trai.ch/mdunits/internal/app"
)
