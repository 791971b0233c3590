package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/manifest"
)

// ConfigFileName marks the workspace root and carries the layout config.
const ConfigFileName = "pymono.toml"

// Config is the workspace-level configuration read from pymono.toml.
type Config struct {
	// AppsDir is the layout root for application projects.
	AppsDir string `toml:"apps-dir"`

	// LibsDir is the layout root for library projects.
	LibsDir string `toml:"libs-dir"`

	// DefaultDependencyGroup is the root manifest group new projects are
	// registered into when none is given on the command line.
	DefaultDependencyGroup string `toml:"default-dependency-group"`
}

// DefaultConfig returns the layout used when pymono.toml sets nothing.
func DefaultConfig() Config {
	return Config{
		AppsDir:                "apps",
		LibsDir:                "libs",
		DefaultDependencyGroup: manifest.MainGroup,
	}
}

// Workspace represents a monorepo managed by pymono.
type Workspace struct {
	fs filesystem.FileSystem

	RootPath string
	Config   Config
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem) *Workspace {
	return &Workspace{
		fs:     fs,
		Config: DefaultConfig(),
	}
}

// Detect finds and loads the workspace from the current directory by
// walking up until a pymono.toml or a root pyproject.toml is found.
func (w *Workspace) Detect() error {
	cwd, err := w.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	dir := cwd
	for {
		if w.fs.Exists(filepath.Join(dir, ConfigFileName)) || w.fs.Exists(filepath.Join(dir, manifest.FileName)) {
			w.RootPath = dir
			return w.loadConfig()
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return fmt.Errorf("workspace not found (no %s or %s above %s)", ConfigFileName, manifest.FileName, cwd)
		}
		dir = parent
	}
}

// Open loads a workspace rooted at a known directory.
func Open(fs filesystem.FileSystem, root string) (*Workspace, error) {
	w := New(fs)
	w.RootPath = root
	if err := w.loadConfig(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Workspace) loadConfig() error {
	path := filepath.Join(w.RootPath, ConfigFileName)
	if !w.fs.Exists(path) {
		return nil
	}

	data, err := w.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.AppsDir == "" {
		cfg.AppsDir = DefaultConfig().AppsDir
	}
	if cfg.LibsDir == "" {
		cfg.LibsDir = DefaultConfig().LibsDir
	}
	if cfg.DefaultDependencyGroup == "" {
		cfg.DefaultDependencyGroup = manifest.MainGroup
	}

	w.Config = cfg
	return nil
}

// RootPyprojectPath returns the location of the shared root manifest.
func (w *Workspace) RootPyprojectPath() string {
	return filepath.Join(w.RootPath, manifest.FileName)
}

// HasRootPyproject reports whether the shared root manifest exists.
func (w *Workspace) HasRootPyproject() bool {
	return w.fs.Exists(w.RootPyprojectPath())
}

// AbsPath resolves a workspace-relative path against the root.
func (w *Workspace) AbsPath(rel string) string {
	return filepath.Join(w.RootPath, rel)
}
