package checkout

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/godev/internal/adapters/config"
	"go.trai.ch/godev/internal/adapters/gitmirror"
	"go.trai.ch/godev/internal/adapters/logger"
	"go.trai.ch/godev/internal/core/ports"
)

const NodeID graft.ID = "adapter.checkout_cache"

func init() {
	graft.Register(graft.Node[ports.CheckoutCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, gitmirror.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CheckoutCache, error) {
			cfg, err := graft.Dep[*ports.Config](ctx)
			if err != nil {
				return nil, err
			}
			mirror, err := graft.Dep[ports.Mirror](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Layout.CheckoutsDir, mirror, log), nil
		},
	})
}
