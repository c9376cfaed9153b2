package vcs

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the version control Graft node.
const NodeID graft.ID = "adapter.vcs"

func init() {
	graft.Register(graft.Node[ports.VCS]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VCS, error) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "get working directory")
			}
			return New(wd), nil
		},
	})
}
