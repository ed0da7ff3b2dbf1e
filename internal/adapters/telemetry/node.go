package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"go.trai.ch/godev/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

// ProgressEnvVar enables progrock progress recording when set. Builds are
// minutes long, so this is opt-in rather than polluting scripted use.
const ProgressEnvVar = "GODEV_PROGRESS"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			if os.Getenv(ProgressEnvVar) != "" {
				return New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
