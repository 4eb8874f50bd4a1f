package ports

import "go.trai.ch/quire/internal/core/domain"

// ProjectLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=project_loader.go -destination=mocks/mock_project_loader.go -package=mocks
type ProjectLoader interface {
	// Load finds the project file starting at cwd and walking up.
	Load(cwd string) (*domain.Project, error)

	// DiscoverRoot walks up from cwd to find the project root.
	DiscoverRoot(cwd string) (string, error)
}

// SettingsLoader loads tool settings for a project root.
type SettingsLoader interface {
	Load(root string) (domain.Settings, error)
}

// WorldFactory creates source snapshots for a project.
type WorldFactory interface {
	Snapshot(project *domain.Project) (World, error)
}
