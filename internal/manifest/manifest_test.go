package manifest

import (
	"errors"
	"testing"

	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rootManifest = `[tool.poetry]
name = "workspace"
version = "1.0.0"

[tool.poetry.dependencies]
python = ">=3.9,<4"

[tool.poetry.group.dev.dependencies]
pytest = "7.3.1"
`

func TestLoad(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/pyproject.toml", []byte(rootManifest))

	doc, err := Load(fs, "/workspace/pyproject.toml")
	require.NoError(t, err)

	assert.Equal(t, "/workspace/pyproject.toml", doc.Path())
	assert.True(t, doc.HasDependency(MainGroup, "python"))
	assert.True(t, doc.HasDependency(DevGroup, "pytest"))
}

func TestLoad_ParseError(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/pyproject.toml", []byte("[tool.poetry\nname ="))

	_, err := Load(fs, "/workspace/pyproject.toml")
	require.Error(t, err)

	var parseErr *models.ManifestParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "/workspace/pyproject.toml", parseErr.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	_, err := Load(fs, "/workspace/pyproject.toml")
	require.Error(t, err)

	var parseErr *models.ManifestParseError
	assert.False(t, errors.As(err, &parseErr))
}

func TestDocument_Dependencies_ReturnsCopy(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/pyproject.toml", []byte(rootManifest))

	doc, err := Load(fs, "/workspace/pyproject.toml")
	require.NoError(t, err)

	deps := doc.Dependencies(DevGroup)
	deps["flake8"] = "6.0.0"

	assert.False(t, doc.HasDependency(DevGroup, "flake8"))
}

func TestDocument_Dependencies_MissingGroup(t *testing.T) {
	doc := New("/workspace/pyproject.toml")

	deps := doc.Dependencies("docs")
	assert.Empty(t, deps)
}

func TestDocument_AddDependency(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/pyproject.toml", []byte(rootManifest))

	doc, err := Load(fs, "/workspace/pyproject.toml")
	require.NoError(t, err)

	doc.AddDependency(MainGroup, "my-service", PathDependency{Path: "apps/my-service", Develop: true})
	assert.True(t, doc.HasDependency(MainGroup, "my-service"))

	// Adding again must not overwrite the existing declaration.
	doc.AddDependency(MainGroup, "python", "^3.11")
	assert.Equal(t, ">=3.9,<4", doc.Dependencies(MainGroup)["python"])
}

func TestDocument_SetDependencies_PreservesSiblings(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/pyproject.toml", []byte(rootManifest))

	doc, err := Load(fs, "/workspace/pyproject.toml")
	require.NoError(t, err)

	doc.SetDependencies("docs", DependencySet{"sphinx": "7.0.0"})

	// The new group must not clobber existing groups or the main table.
	assert.True(t, doc.HasDependency("docs", "sphinx"))
	assert.True(t, doc.HasDependency(DevGroup, "pytest"))
	assert.True(t, doc.HasDependency(MainGroup, "python"))

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "workspace")
}

func TestDocument_SaveRoundTrip(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/pyproject.toml", []byte(rootManifest))

	doc, err := Load(fs, "/workspace/pyproject.toml")
	require.NoError(t, err)

	doc.AddDependency(MainGroup, "my-service", PathDependency{Path: "apps/my-service", Develop: true})
	require.NoError(t, doc.Save(fs))

	reloaded, err := Load(fs, "/workspace/pyproject.toml")
	require.NoError(t, err)

	assert.True(t, reloaded.HasDependency(MainGroup, "my-service"))
	entry, ok := reloaded.Dependencies(MainGroup)["my-service"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "apps/my-service", entry["path"])
	assert.Equal(t, true, entry["develop"])
}
