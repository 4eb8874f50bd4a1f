// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/quire/internal/adapters/cas"
	_ "go.trai.ch/quire/internal/adapters/config"
	_ "go.trai.ch/quire/internal/adapters/fs"
	_ "go.trai.ch/quire/internal/adapters/logger"
	_ "go.trai.ch/quire/internal/adapters/shell"
	_ "go.trai.ch/quire/internal/adapters/telemetry"
	_ "go.trai.ch/quire/internal/adapters/textdoc"
	_ "go.trai.ch/quire/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/quire/internal/app"
	_ "go.trai.ch/quire/internal/engine/scheduler"
)
