package generator

import (
	"testing"

	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/manifest"
	"github.com/pymono-dev/pymono/internal/models"
	"github.com/pymono-dev/pymono/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mutateRootManifest = `[tool.poetry]
name = "workspace"
version = "1.0.0"

[tool.poetry.dependencies]
python = ">=3.9,<4"
`

func mutateDescriptor(individual bool, devProject string) *models.ProjectDescriptor {
	d := &models.ProjectDescriptor{
		ProjectOptions: models.ProjectOptions{
			Linter:                       models.LinterFlake8,
			UnitTestRunner:               models.TestRunnerPytest,
			RootPyprojectDependencyGroup: "main",
			DevDependenciesProject:       devProject,
		},
		ProjectName:       "svc",
		ProjectRoot:       "apps/svc",
		PackageName:       "svc",
		IndividualPackage: individual,
	}
	if devProject != "" {
		d.DevDependenciesProjectPath = "../../libs/dev-tools"
	}
	return d
}

func TestApplyDependencies_RootManifest(t *testing.T) {
	fs, ws := newTestWorkspaceWithRoot(t, mutateRootManifest)

	require.NoError(t, NewMutator(fs, ws).ApplyDependencies(mutateDescriptor(false, "")))

	doc, err := manifest.Load(fs, ws.RootPyprojectPath())
	require.NoError(t, err)

	// New project registered as an editable path dependency.
	entry, ok := doc.Dependencies(manifest.MainGroup)["svc"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "apps/svc", entry["path"])
	assert.Equal(t, true, entry["develop"])

	// Existing entries survive.
	assert.Equal(t, ">=3.9,<4", doc.Dependencies(manifest.MainGroup)["python"])

	// Without a shared dev project the root dev group is reconciled.
	devDeps := doc.Dependencies(manifest.DevGroup)
	assert.Equal(t, "6.0.0", devDeps["flake8"])
	assert.Equal(t, "7.3.1", devDeps["pytest"])
}

func TestApplyDependencies_CustomGroup(t *testing.T) {
	fs, ws := newTestWorkspaceWithRoot(t, mutateRootManifest)

	d := mutateDescriptor(false, "")
	d.RootPyprojectDependencyGroup = "workspace"
	require.NoError(t, NewMutator(fs, ws).ApplyDependencies(d))

	doc, err := manifest.Load(fs, ws.RootPyprojectPath())
	require.NoError(t, err)

	assert.True(t, doc.HasDependency("workspace", "svc"))
	assert.False(t, doc.HasDependency(manifest.MainGroup, "svc"))
	assert.True(t, doc.HasDependency(manifest.MainGroup, "python"))
}

func TestApplyDependencies_CustomGroupKeepsExistingEntries(t *testing.T) {
	fs, ws := newTestWorkspaceWithRoot(t, mutateRootManifest+`
[tool.poetry.group.build.dependencies]
existing = "1.0"
`)

	d := mutateDescriptor(false, "")
	d.RootPyprojectDependencyGroup = "build"
	require.NoError(t, NewMutator(fs, ws).ApplyDependencies(d))

	doc, err := manifest.Load(fs, ws.RootPyprojectPath())
	require.NoError(t, err)

	// The path dependency lands next to the unrelated entry.
	assert.True(t, doc.HasDependency("build", "svc"))
	assert.Equal(t, "1.0", doc.Dependencies("build")["existing"])
	assert.True(t, doc.HasDependency(manifest.MainGroup, "python"))
}

func TestApplyDependencies_SharedDevProjectWins(t *testing.T) {
	fs, ws := newTestWorkspaceWithRoot(t, mutateRootManifest)
	fs.AddFile("/repo/libs/dev-tools/pyproject.toml", []byte(`[tool.poetry]
name = "dev-tools"
version = "1.0.0"
`))

	require.NoError(t, NewMutator(fs, ws).ApplyDependencies(mutateDescriptor(false, "dev-tools")))

	// The shared project's dev group carries the test dependencies.
	shared, err := manifest.Load(fs, "/repo/libs/dev-tools/pyproject.toml")
	require.NoError(t, err)
	assert.Equal(t, "6.0.0", shared.Dependencies(manifest.DevGroup)["flake8"])
	assert.Equal(t, "7.3.1", shared.Dependencies(manifest.DevGroup)["pytest"])

	// The root still registers the path dependency but its dev group is
	// left untouched.
	root, err := manifest.Load(fs, ws.RootPyprojectPath())
	require.NoError(t, err)
	assert.True(t, root.HasDependency(manifest.MainGroup, "svc"))
	assert.Empty(t, root.Dependencies(manifest.DevGroup))
}

func TestApplyDependencies_SharedDevProjectUnchangedNotRewritten(t *testing.T) {
	fs, ws := newTestWorkspaceWithRoot(t, mutateRootManifest)

	sharedPath := "/repo/libs/dev-tools/pyproject.toml"
	original := `# hand maintained
[tool.poetry.group.dev.dependencies]
flake8 = "6.0.0"
autopep8 = "2.0.2"
pytest = "7.3.1"
pytest-sugar = "0.9.7"
`
	fs.AddFile(sharedPath, []byte(original))

	require.NoError(t, NewMutator(fs, ws).ApplyDependencies(mutateDescriptor(false, "dev-tools")))

	// Nothing was missing, so the file was not rewritten.
	data, err := fs.ReadFile(sharedPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestApplyDependencies_IndividualPackage(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/repo/pymono.toml", []byte(""))
	fs.SetCurrentDir("/repo")

	ws := workspace.New(fs)
	require.NoError(t, ws.Detect())

	require.NoError(t, NewMutator(fs, ws).ApplyDependencies(mutateDescriptor(true, "")))

	// No root manifest, nothing to mutate.
	assert.False(t, fs.Exists("/repo/pyproject.toml"))
}

func TestApplyDependencies_Idempotent(t *testing.T) {
	fs, ws := newTestWorkspaceWithRoot(t, mutateRootManifest)
	d := mutateDescriptor(false, "")

	require.NoError(t, NewMutator(fs, ws).ApplyDependencies(d))
	first, err := fs.ReadFile(ws.RootPyprojectPath())
	require.NoError(t, err)

	require.NoError(t, NewMutator(fs, ws).ApplyDependencies(d))
	second, err := fs.ReadFile(ws.RootPyprojectPath())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func newTestWorkspaceWithRoot(t *testing.T, rootManifest string) (*filesystem.MockFileSystem, *workspace.Workspace) {
	t.Helper()

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/repo/pymono.toml", []byte(""))
	fs.AddFile("/repo/pyproject.toml", []byte(rootManifest))
	fs.SetCurrentDir("/repo")

	ws := workspace.New(fs)
	require.NoError(t, ws.Detect())
	return fs, ws
}
