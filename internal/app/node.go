package app

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"go.trai.ch/godev/internal/adapters/artifact"
	"go.trai.ch/godev/internal/adapters/checkout"
	"go.trai.ch/godev/internal/adapters/config"
	"go.trai.ch/godev/internal/adapters/gitmirror"
	"go.trai.ch/godev/internal/adapters/logger"
	"go.trai.ch/godev/internal/adapters/shell"
	"go.trai.ch/godev/internal/adapters/telemetry"
	"go.trai.ch/godev/internal/core/ports"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			gitmirror.NodeID,
			checkout.NodeID,
			artifact.StoreNodeID,
			artifact.AliasNodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*ports.Config](ctx)
	if err != nil {
		return nil, err
	}
	mirror, err := graft.Dep[ports.Mirror](ctx)
	if err != nil {
		return nil, err
	}
	checkouts, err := graft.Dep[ports.CheckoutCache](ctx)
	if err != nil {
		return nil, err
	}
	artifacts, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}
	tip, err := graft.Dep[ports.TipAlias](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, mirror, checkouts, artifacts, tip, executor, log, tel, os.Stdout), nil
}
