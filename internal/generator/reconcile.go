package generator

import (
	"reflect"

	"github.com/pymono-dev/pymono/internal/manifest"
	"github.com/pymono-dev/pymono/internal/models"
)

// Pinned versions of the development tools wired into generated projects.
const (
	flake8Version      = "6.0.0"
	autopep8Version    = "2.0.2"
	pytestVersion      = "7.3.1"
	pytestSugarVersion = "0.9.7"
	pytestCovVersion   = "4.1.0"
	pytestHTMLVersion  = "3.2.0"
)

type depRule struct {
	name    string
	version string
	applies func(d *models.ProjectDescriptor) bool
}

var devDependencyRules = []depRule{
	{
		name:    "flake8",
		version: flake8Version,
		applies: func(d *models.ProjectDescriptor) bool { return d.Linter == models.LinterFlake8 },
	},
	{
		name:    "autopep8",
		version: autopep8Version,
		applies: func(d *models.ProjectDescriptor) bool { return true },
	},
	{
		name:    "pytest",
		version: pytestVersion,
		applies: func(d *models.ProjectDescriptor) bool { return d.UnitTestRunner == models.TestRunnerPytest },
	},
	{
		name:    "pytest-sugar",
		version: pytestSugarVersion,
		applies: func(d *models.ProjectDescriptor) bool { return d.UnitTestRunner == models.TestRunnerPytest },
	},
	{
		name:    "pytest-cov",
		version: pytestCovVersion,
		applies: func(d *models.ProjectDescriptor) bool {
			return d.UnitTestRunner == models.TestRunnerPytest && d.CodeCoverage
		},
	},
	{
		name:    "pytest-html",
		version: pytestHTMLVersion,
		applies: func(d *models.ProjectDescriptor) bool {
			return d.UnitTestRunner == models.TestRunnerPytest && d.CodeCoverageHTMLReport
		},
	},
}

// Reconcile computes the dev dependencies the descriptor requires on top
// of an existing dependency set. Existing entries are never overwritten
// or removed; each rule only adds its entry when the name is absent. The
// returned flag reports whether the result differs from the input, so
// callers can skip needless writes and lock churn.
func Reconcile(existing manifest.DependencySet, d *models.ProjectDescriptor) (manifest.DependencySet, bool) {
	merged := manifest.DependencySet{}
	for name, value := range existing {
		merged[name] = value
	}

	for _, rule := range devDependencyRules {
		if !rule.applies(d) {
			continue
		}
		if _, present := merged[rule.name]; present {
			continue
		}
		merged[rule.name] = rule.version
	}

	base := existing
	if base == nil {
		base = manifest.DependencySet{}
	}

	return merged, !reflect.DeepEqual(base, merged)
}
