package settings

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crusader/internal/core/ports"
)

// NodeID is the unique identifier for the settings store Graft node.
const NodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[ports.SettingsStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsStore, error) {
			dir, err := DefaultGlobalDir()
			if err != nil {
				return nil, err
			}
			return NewStore(dir), nil
		},
	})
}
