package artifact

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/godev/internal/adapters/config"
	"go.trai.ch/godev/internal/adapters/logger"
	"go.trai.ch/godev/internal/core/ports"
)

const (
	// StoreNodeID is the unique identifier for the artifact store node.
	StoreNodeID graft.ID = "adapter.artifact_store"
	// AliasNodeID is the unique identifier for the tip alias node.
	AliasNodeID graft.ID = "adapter.tip_alias"
)

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ArtifactStore, error) {
			cfg, err := graft.Dep[*ports.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.Layout.ArtifactsDir, cfg.Build, log), nil
		},
	})

	graft.Register(graft.Node[ports.TipAlias]{
		ID:        AliasNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.TipAlias, error) {
			cfg, err := graft.Dep[*ports.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewAlias(cfg.Layout.ArtifactsDir), nil
		},
	})
}
