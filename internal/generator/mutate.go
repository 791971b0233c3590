package generator

import (
	"path"

	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/manifest"
	"github.com/pymono-dev/pymono/internal/models"
	"github.com/pymono-dev/pymono/internal/workspace"
)

// Mutator applies a descriptor's dependency requirements to the shared
// manifest documents: the root pyproject.toml and, when configured, a
// shared dev-dependency project's own manifest.
type Mutator struct {
	fs filesystem.FileSystem
	ws *workspace.Workspace
}

// NewMutator creates a mutator operating on the given workspace.
func NewMutator(fs filesystem.FileSystem, ws *workspace.Workspace) *Mutator {
	return &Mutator{fs: fs, ws: ws}
}

// ApplyDependencies performs the two mutation branches:
//
//  1. When a shared dev-dependency project is named, its dev group is
//     reconciled and written back only if it changed.
//  2. When a root manifest exists, the new project is registered there as
//     a path dependency, and - unless branch 1 ran - the root dev group
//     is reconciled too. The root manifest is always written back.
//
// When both a shared dev project and a root manifest exist, the test
// dependencies go to the shared project only; the root dev group is left
// untouched.
func (m *Mutator) ApplyDependencies(d *models.ProjectDescriptor) error {
	devProjectHandled := false

	if d.DevDependenciesProject != "" {
		sharedRoot := path.Join(d.ProjectRoot, d.DevDependenciesProjectPath)
		sharedManifest := m.ws.AbsPath(path.Join(sharedRoot, manifest.FileName))

		doc, err := manifest.Load(m.fs, sharedManifest)
		if err != nil {
			return err
		}

		merged, changed := Reconcile(doc.Dependencies(manifest.DevGroup), d)
		if changed {
			doc.SetDependencies(manifest.DevGroup, merged)
			if err := doc.Save(m.fs); err != nil {
				return err
			}
		}
		devProjectHandled = true
	}

	if d.IndividualPackage {
		return nil
	}

	doc, err := manifest.Load(m.fs, m.ws.RootPyprojectPath())
	if err != nil {
		return err
	}

	doc.AddDependency(d.RootPyprojectDependencyGroup, d.PackageName, manifest.PathDependency{
		Path:    d.ProjectRoot,
		Develop: true,
	})

	if !devProjectHandled {
		merged, _ := Reconcile(doc.Dependencies(manifest.DevGroup), d)
		doc.SetDependencies(manifest.DevGroup, merged)
	}

	return doc.Save(m.fs)
}
