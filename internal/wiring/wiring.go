// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/godev/internal/adapters/artifact"
	_ "go.trai.ch/godev/internal/adapters/checkout"
	_ "go.trai.ch/godev/internal/adapters/config"
	_ "go.trai.ch/godev/internal/adapters/gitmirror"
	_ "go.trai.ch/godev/internal/adapters/logger"
	_ "go.trai.ch/godev/internal/adapters/shell"
	_ "go.trai.ch/godev/internal/adapters/telemetry"
	// Register the app node.
	_ "go.trai.ch/godev/internal/app"
)
