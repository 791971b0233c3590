package generator

import (
	"testing"

	"github.com/pymono-dev/pymono/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTargets_AlwaysPresent(t *testing.T) {
	d := mutateDescriptor(false, "")
	d.Linter = models.LinterNone
	d.UnitTestRunner = models.TestRunnerNone

	targets := BuildTargets(d)

	for _, name := range []string{"lock", "add", "update", "remove", "build", "install"} {
		require.Contains(t, targets, name)
		assert.Equal(t, "pymono:"+name, targets[name].Executor)
	}
	assert.NotContains(t, targets, "lint")
	assert.NotContains(t, targets, "test")
}

func TestBuildTargets_Build(t *testing.T) {
	d := mutateDescriptor(false, "")
	d.Publishable = true
	d.BuildLockedVersions = true

	build := BuildTargets(d)["build"]
	assert.Equal(t, []string{"dist/apps/svc"}, build.Outputs)
	assert.Equal(t, "dist/apps/svc", build.Options["outputPath"])
	assert.Equal(t, true, build.Options["publish"])
	assert.Equal(t, true, build.Options["lockedVersions"])
	assert.Equal(t, false, build.Options["bundleLocalDependencies"])
}

func TestBuildTargets_Lint(t *testing.T) {
	d := mutateDescriptor(false, "")

	lint, ok := BuildTargets(d)["lint"]
	require.True(t, ok)
	assert.Equal(t, "pymono:flake8", lint.Executor)
	assert.Equal(t, "reports/apps/svc/pylint.txt", lint.Options["outputFile"])
	assert.Equal(t, []string{"reports/apps/svc/pylint.txt"}, lint.Outputs)
}

func TestBuildTargets_Test(t *testing.T) {
	d := mutateDescriptor(false, "")

	test, ok := BuildTargets(d)["test"]
	require.True(t, ok)
	assert.Equal(t, "pymono:test", test.Executor)
	assert.Equal(t, []string{"reports/apps/svc/unittests", "coverage/apps/svc"}, test.Outputs)
}

func TestBuildTargets_Install(t *testing.T) {
	install := BuildTargets(mutateDescriptor(false, ""))["install"]
	assert.Equal(t, ".cache/pypoetry", install.Options["cacheDir"])
	assert.Equal(t, false, install.Options["verbose"])
	assert.Equal(t, false, install.Options["debug"])
}
