package shell

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/godev/internal/adapters/config"
	"go.trai.ch/godev/internal/adapters/logger"
	"go.trai.ch/godev/internal/core/ports"
)

const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			cfg, err := graft.Dep[*ports.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(cfg.Build, log), nil
		},
	})
}
