package console

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/crusader/internal/adapters/detector" //nolint:depguard // Wired in engine wiring
)

// NodeID is the unique identifier for the console Graft node.
const NodeID graft.ID = "adapter.console"

func init() {
	graft.Register(graft.Node[*Terminal]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Terminal, error) {
			return New(os.Stdout, detector.ModeAuto), nil
		},
	})
}
