// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bagel/internal/adapters/config"
	_ "go.trai.ch/bagel/internal/adapters/logger"
	_ "go.trai.ch/bagel/internal/adapters/resolver"
	_ "go.trai.ch/bagel/internal/adapters/telemetry"
	_ "go.trai.ch/bagel/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/bagel/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/bagel/internal/app"
)
