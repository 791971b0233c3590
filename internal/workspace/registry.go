package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/models"
)

// ProjectFileName is the per-project registration record.
const ProjectFileName = "project.json"

// skipDirs are never descended into during discovery.
var skipDirs = map[string]bool{
	".git":          true,
	".venv":         true,
	"node_modules":  true,
	"__pycache__":   true,
	".pytest_cache": true,
	"dist":          true,
}

// Registry is the workspace-wide project registry. Registration records
// live as project.json files inside each project root.
type Registry struct {
	fs filesystem.FileSystem
	ws *Workspace
}

// NewRegistry creates a registry for the given workspace.
func NewRegistry(fs filesystem.FileSystem, ws *Workspace) *Registry {
	return &Registry{fs: fs, ws: ws}
}

// Register writes the registration record for a project.
func (r *Registry) Register(cfg *models.ProjectConfiguration) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize project configuration for %s: %w", cfg.Name, err)
	}
	data = append(data, '\n')

	dir := r.ws.AbsPath(cfg.Root)
	if err := r.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ProjectFileName)
	if err := r.fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Lookup returns the registration record for a project name. Returns a
// NotFoundError when the project is not registered.
func (r *Registry) Lookup(name string) (*models.ProjectConfiguration, error) {
	projects, err := r.List()
	if err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, &models.NotFoundError{Project: name}
}

// List discovers all registration records in the workspace, respecting
// the root .gitignore.
func (r *Registry) List() ([]*models.ProjectConfiguration, error) {
	ignore, err := r.loadRootGitIgnore()
	if err != nil {
		return nil, err
	}

	var projects []*models.ProjectConfiguration
	err = r.fs.WalkDir(r.ws.RootPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == r.ws.RootPath {
			return nil
		}

		if entry.IsDir() {
			if skipDirs[entry.Name()] {
				return filepath.SkipDir
			}
		}

		rel, relErr := filepath.Rel(r.ws.RootPath, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if ignore != nil {
			if match := ignore.Relative(rel, entry.IsDir()); match != nil && match.Ignore() {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if entry.IsDir() || filepath.Base(path) != ProjectFileName {
			return nil
		}

		data, err := r.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var cfg models.ProjectConfiguration
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		if cfg.Root == "" {
			cfg.Root = filepath.ToSlash(filepath.Dir(rel))
		}
		if cfg.Name == "" {
			cfg.Name = lastSegment(cfg.Root)
		}

		projects = append(projects, &cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

func (r *Registry) loadRootGitIgnore() (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(r.ws.RootPath, ".gitignore")
	if !r.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := r.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), r.ws.RootPath, nil), nil
}

func lastSegment(p string) string {
	parts := strings.Split(filepath.ToSlash(p), "/")
	return parts[len(parts)-1]
}
