package ports

import "go.trai.ch/bagel/internal/core/domain"

// ConfigLoader defines the interface for loading the server configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads bagel.yaml from path, or discovers it by walking up from cwd when path is empty.
	// A missing file yields the default configuration rooted at cwd.
	Load(cwd, path string) (*domain.Config, error)

	// DiscoverConfig walks up from cwd and returns the path of the first bagel.yaml found.
	DiscoverConfig(cwd string) (string, error)
}
