package ports

import "go.trai.ch/crusader/internal/core/domain"

// ProjectLoader reads the project definition.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ProjectLoader interface {
	// DiscoverRoot walks up from cwd to find the directory holding crusader.yaml.
	DiscoverRoot(cwd string) (string, error)

	// Load reads the project that contains cwd.
	Load(cwd string) (*domain.Project, error)
}
