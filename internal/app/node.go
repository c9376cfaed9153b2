package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crusader/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/console"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/settings"  //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/vcs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			settings.NodeID,
			fs.NodeID,
			fs.WalkerNodeID,
			vcs.NodeID,
			shell.NodeID,
			console.NodeID,
			telemetry.TracerNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ProjectLoader](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.SettingsStore](ctx)
	if err != nil {
		return nil, err
	}
	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}
	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}
	repo, err := graft.Dep[ports.VCS](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.ProcessRunner](ctx)
	if err != nil {
		return nil, err
	}
	term, err := graft.Dep[*console.Terminal](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, store, fsys, walker, repo, runner, term, tracer, w, log), nil
}
