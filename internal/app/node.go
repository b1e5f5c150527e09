package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mdunits/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/mdunits/internal/adapters/definitions" //nolint:depguard // Wired in app layer
	"go.trai.ch/mdunits/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/mdunits/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			definitions.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			cfgLoader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			defLoader, err := graft.Dep[ports.DefinitionLoader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(cfgLoader, defLoader, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
