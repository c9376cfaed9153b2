// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/crusader/internal/adapters/config"
	_ "go.trai.ch/crusader/internal/adapters/console"
	_ "go.trai.ch/crusader/internal/adapters/fs"
	_ "go.trai.ch/crusader/internal/adapters/logger"
	_ "go.trai.ch/crusader/internal/adapters/settings"
	_ "go.trai.ch/crusader/internal/adapters/shell"
	_ "go.trai.ch/crusader/internal/adapters/telemetry"
	_ "go.trai.ch/crusader/internal/adapters/vcs"
	_ "go.trai.ch/crusader/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/crusader/internal/app"
)
