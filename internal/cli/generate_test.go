package cli

import (
	"bytes"
	"testing"

	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/poetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommandEnv(withRootManifest bool) (*filesystem.MockFileSystem, *poetry.MockRunner) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/repo/pymono.toml", []byte(""))
	if withRootManifest {
		fs.AddFile("/repo/pyproject.toml", []byte("[tool.poetry]\nname = \"workspace\"\n"))
	}
	fs.SetCurrentDir("/repo")
	return fs, poetry.NewMockRunner()
}

func TestGenerateCommand(t *testing.T) {
	fs, runner := newCommandEnv(true)

	cmd := NewGenerateCommand(fs, runner)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"my-service"})

	require.NoError(t, cmd.Execute())

	assert.True(t, fs.Exists("/repo/apps/my-service/pyproject.toml"))
	assert.True(t, fs.Exists("/repo/apps/my-service/project.json"))
	assert.True(t, fs.Exists("/repo/apps/my-service/my_service/hello.py"))

	// The lock refresh runs after the files are committed.
	require.Len(t, runner.Calls, 1)
	assert.Equal(t, []string{"update", "my-service"}, runner.Calls[0].Args)
}

func TestGenerateCommand_SkipLock(t *testing.T) {
	fs, runner := newCommandEnv(true)

	cmd := NewGenerateCommand(fs, runner)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"my-service", "--skip-lock"})

	require.NoError(t, cmd.Execute())

	assert.True(t, fs.Exists("/repo/apps/my-service/pyproject.toml"))
	assert.Empty(t, runner.Calls)
}

func TestGenerateCommand_LibraryFlags(t *testing.T) {
	fs, runner := newCommandEnv(true)

	cmd := NewGenerateCommand(fs, runner)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"data-access", "--kind", "library", "--linter", "none", "--tags", "python,db"})

	require.NoError(t, cmd.Execute())

	assert.True(t, fs.Exists("/repo/libs/data-access/pyproject.toml"))
	assert.False(t, fs.Exists("/repo/libs/data-access/.flake8"))
}

func TestGenerateCommand_InvalidKind(t *testing.T) {
	fs, runner := newCommandEnv(true)

	cmd := NewGenerateCommand(fs, runner)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"svc", "--kind", "daemon"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind")

	// Validation failures must not leave partial output behind.
	assert.False(t, fs.Exists("/repo/apps/svc/pyproject.toml"))
	assert.Empty(t, runner.Calls)
}

func TestGenerateCommand_MissingName(t *testing.T) {
	fs, runner := newCommandEnv(true)

	cmd := NewGenerateCommand(fs, runner)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Empty(t, runner.Calls)
}
