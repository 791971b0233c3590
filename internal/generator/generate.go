package generator

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/manifest"
	"github.com/pymono-dev/pymono/internal/models"
	"github.com/pymono-dev/pymono/internal/poetry"
	"github.com/pymono-dev/pymono/internal/templates"
	"github.com/pymono-dev/pymono/internal/workspace"
)

// Generator orchestrates a full project generation run.
type Generator struct {
	fs     filesystem.FileSystem
	runner poetry.Runner
}

// New creates a generator writing through fs and refreshing locks with
// runner.
func New(fs filesystem.FileSystem, runner poetry.Runner) *Generator {
	return &Generator{fs: fs, runner: runner}
}

// Result is the two-phase outcome of a generation run: the staged file
// mutations, and a deferred lock refresh that must only run after the
// staged state has been committed.
type Result struct {
	Descriptor    *models.ProjectDescriptor
	Configuration *models.ProjectConfiguration

	// CreatedFiles lists the workspace-relative paths staged for commit.
	CreatedFiles []string

	staged    *filesystem.Staged
	refresh   func() error
	committed bool
}

// Commit flushes all staged mutations to durable storage.
func (r *Result) Commit() error {
	if err := r.staged.Flush(); err != nil {
		return err
	}
	r.committed = true
	return nil
}

// RefreshLock triggers the project-scoped lock file refresh. It is a
// no-op when the workspace has no root manifest, and must only be called
// after Commit; failures propagate and never roll back prior writes.
func (r *Result) RefreshLock() error {
	if !r.committed {
		return fmt.Errorf("refusing to refresh lock before staged changes are committed")
	}
	return r.refresh()
}

// Generate runs normalization, template materialization, registration
// and manifest mutation against a staged view of the workspace. Nothing
// touches disk until Result.Commit.
func (g *Generator) Generate(opts models.ProjectOptions) (*Result, error) {
	staged := filesystem.NewStaged(g.fs)

	ws := workspace.New(staged)
	if err := ws.Detect(); err != nil {
		return nil, err
	}

	reg := workspace.NewRegistry(staged, ws)

	descriptor, err := Normalize(opts, ws, reg)
	if err != nil {
		return nil, err
	}

	// A stand-alone manifest carries its own dev tooling; otherwise the
	// mutator routes those into the shared documents.
	var devDeps manifest.DependencySet
	if descriptor.IndividualPackage {
		devDeps, _ = Reconcile(nil, descriptor)
	}

	if err := templates.Materialize(staged, ws, templates.Data{
		ProjectDescriptor: descriptor,
		DevDependencies:   devDeps,
	}); err != nil {
		return nil, err
	}

	cfg := &models.ProjectConfiguration{
		Name:       descriptor.ProjectName,
		Root:       descriptor.ProjectRoot,
		SourceRoot: path.Join(descriptor.ProjectRoot, descriptor.ModuleName),
		Kind:       descriptor.Kind,
		Targets:    BuildTargets(descriptor),
		Tags:       descriptor.ParsedTags,
	}
	if err := reg.Register(cfg); err != nil {
		return nil, err
	}

	if err := NewMutator(staged, ws).ApplyDependencies(descriptor); err != nil {
		return nil, err
	}

	created := make([]string, 0, len(staged.Pending()))
	for _, p := range staged.Pending() {
		if rel, relErr := filepath.Rel(ws.RootPath, p); relErr == nil {
			created = append(created, filepath.ToSlash(rel))
		} else {
			created = append(created, p)
		}
	}

	runner := g.runner
	return &Result{
		Descriptor:    descriptor,
		Configuration: cfg,
		CreatedFiles:  created,
		staged:        staged,
		refresh: func() error {
			if descriptor.IndividualPackage {
				return nil
			}
			return runner.Run([]string{"update", descriptor.PackageName}, poetry.RunOptions{
				Log: true,
				Dir: ws.RootPath,
			})
		},
	}, nil
}
