package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crusader/internal/adapters/console" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crusader/internal/core/ports"
)

// TracerNodeID is the unique identifier for the telemetry Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{console.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			term, err := graft.Dep[*console.Terminal](ctx)
			if err != nil {
				return nil, err
			}
			Setup(term)
			return NewOTelTracer("crusader"), nil
		},
	})
}
