package generator

import (
	"path"

	"github.com/pymono-dev/pymono/internal/models"
)

// BuildTargets derives the automation targets attached to the project
// registration record. Lock/add/update/remove/build/install are always
// present; lint and test appear only when the matching tool is enabled.
func BuildTargets(d *models.ProjectDescriptor) map[string]models.TargetDescriptor {
	root := d.ProjectRoot

	targets := map[string]models.TargetDescriptor{
		"lock": {
			Executor: "pymono:lock",
			Options:  map[string]any{"silent": false, "args": ""},
		},
		"add": {
			Executor: "pymono:add",
			Options:  map[string]any{"silent": false, "args": ""},
		},
		"update": {
			Executor: "pymono:update",
			Options:  map[string]any{"silent": false, "args": ""},
		},
		"remove": {
			Executor: "pymono:remove",
			Options:  map[string]any{"silent": false, "args": ""},
		},
		"build": {
			Executor: "pymono:build",
			Outputs:  []string{path.Join("dist", root)},
			Options: map[string]any{
				"outputPath":              path.Join("dist", root),
				"publish":                 d.Publishable,
				"lockedVersions":          d.BuildLockedVersions,
				"bundleLocalDependencies": d.BuildBundleLocalDependencies,
			},
		},
		"install": {
			Executor: "pymono:install",
			Options: map[string]any{
				"silent":   false,
				"args":     "",
				"cacheDir": ".cache/pypoetry",
				"verbose":  false,
				"debug":    false,
			},
		},
	}

	if d.Linter == models.LinterFlake8 {
		targets["lint"] = models.TargetDescriptor{
			Executor: "pymono:flake8",
			Outputs:  []string{path.Join("reports", root, "pylint.txt")},
			Options: map[string]any{
				"outputFile": path.Join("reports", root, "pylint.txt"),
			},
		}
	}

	if d.UnitTestRunner == models.TestRunnerPytest {
		targets["test"] = models.TargetDescriptor{
			Executor: "pymono:test",
			Outputs: []string{
				path.Join("reports", root, "unittests"),
				path.Join("coverage", root),
			},
			Options: map[string]any{"silent": false, "args": ""},
		}
	}

	return targets
}
