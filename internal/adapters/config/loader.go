// Package config provides the project and settings loaders for quire.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ProjectLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ProjectLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds quire.yaml starting at cwd and walking up, and parses it.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var file Projectfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	project := &domain.Project{
		Root:        resolveRoot(configPath, file.Root),
		Entry:       filepath.ToSlash(filepath.Clean(file.Entry)),
		Diagnostics: buildDiagnostics(file.Diagnostics),
	}
	if file.Entry == "" {
		project.Entry = ""
		l.Logger.Warn(fmt.Sprintf("no entry defined in %s, exports will be skipped", domain.ProjectFileName))
	}

	tasks, err := buildTasks(file.Tasks)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	project.Tasks = tasks

	return project, nil
}

// DiscoverRoot walks up from cwd to find the project root.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return "", err
	}

	var file struct {
		Root string `yaml:"root"`
	}
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return "", zerr.With(err, "path", configPath)
	}
	return resolveRoot(configPath, file.Root), nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}
	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by discovery
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

// buildTasks decodes task maps through the JSON task codec so YAML and JSON
// definitions share one schema.
func buildTasks(raw []map[string]any) ([]domain.ProjectTask, error) {
	tasks := make([]domain.ProjectTask, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for i, fields := range raw {
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "task_index", i)
		}
		task, err := domain.UnmarshalTask(data)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "task_index", i)
		}
		if seen[task.TaskID()] {
			return nil, zerr.With(domain.ErrDuplicateTaskID, "task_id", task.TaskID())
		}
		seen[task.TaskID()] = true
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// buildDiagnostics fills policies left unset with the defaults.
func buildDiagnostics(dto DiagnosticsDTO) domain.DiagnosticsPolicy {
	policy := domain.DefaultDiagnosticsPolicy()
	overlay(&policy.Paged, dto.Paged)
	overlay(&policy.HTML, dto.HTML)
	return policy
}

func overlay(dst *domain.VariantDiagnostics, dto VariantDiagnosticsDTO) {
	if dto.Continuous != "" {
		dst.Continuous = domain.TaskWhen(dto.Continuous)
	}
	if dto.Explicit != "" {
		dst.Explicit = domain.TaskWhen(dto.Explicit)
	}
}
