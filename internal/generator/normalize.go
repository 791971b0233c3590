package generator

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/pymono-dev/pymono/internal/models"
	"github.com/pymono-dev/pymono/internal/poetry"
	"github.com/pymono-dev/pymono/internal/workspace"
)

// Documented defaults applied only to fields the caller left unset.
const (
	DefaultDescription      = "Automatically generated by pymono."
	DefaultPythonDependency = ">=3.9,<4"
	DefaultPyenvVersion     = "3.9.5"
)

// Normalize expands raw options into a complete project descriptor. It is
// pure given the workspace state (presence of the root manifest, registry
// content): the same options against the same workspace always produce
// the same descriptor.
func Normalize(opts models.ProjectOptions, ws *workspace.Workspace, reg *workspace.Registry) (*models.ProjectDescriptor, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "a project name is required"}
	}

	d := &models.ProjectDescriptor{ProjectOptions: opts}

	// Defaults layer first; caller-set fields are never overridden.
	if d.Kind == "" {
		d.Kind = models.ProjectKindApplication
	} else if _, err := models.ParseProjectKind(string(d.Kind)); err != nil {
		return nil, err
	}
	if d.Linter == "" {
		d.Linter = models.LinterFlake8
	} else if _, err := models.ParseLinter(string(d.Linter)); err != nil {
		return nil, err
	}
	if d.UnitTestRunner == "" {
		d.UnitTestRunner = models.TestRunnerPytest
	} else if _, err := models.ParseTestRunner(string(d.UnitTestRunner)); err != nil {
		return nil, err
	}
	if d.Description == "" {
		d.Description = DefaultDescription
	}
	if d.PyprojectPythonDependency == "" {
		d.PyprojectPythonDependency = DefaultPythonDependency
	} else if err := poetry.ValidateConstraint("python-dependency", d.PyprojectPythonDependency); err != nil {
		return nil, err
	}
	if d.PyenvPythonVersion == "" {
		d.PyenvPythonVersion = DefaultPyenvVersion
	} else if err := poetry.ValidateVersion("pyenv-version", d.PyenvPythonVersion); err != nil {
		return nil, err
	}
	if d.RootPyprojectDependencyGroup == "" {
		d.RootPyprojectDependencyGroup = ws.Config.DefaultDependencyGroup
	}

	// Without a test runner there is nothing to report on. This is a
	// hard override of the caller's toggles, not a default.
	if d.UnitTestRunner == models.TestRunnerNone {
		d.CodeCoverage = false
		d.CodeCoverageThreshold = 0
		d.CodeCoverageHTMLReport = false
		d.CodeCoverageXMLReport = false
		d.UnitTestHTMLReport = false
		d.UnitTestJUnitReport = false
	}

	projectDirectory := toFileName(opts.Name)
	if opts.Directory != "" {
		projectDirectory = path.Join(slugifyDirectory(opts.Directory), projectDirectory)
	}

	layoutRoot := ws.Config.LibsDir
	if d.Kind == models.ProjectKindApplication {
		layoutRoot = ws.Config.AppsDir
	}

	d.ProjectName = strings.ReplaceAll(projectDirectory, "/", "-")
	d.ProjectRoot = path.Join(layoutRoot, projectDirectory)
	d.ModuleName = strings.ReplaceAll(d.ProjectName, "-", "_")
	d.PackageName = d.ProjectName
	d.PytestAddopts = pytestAddopts(d)
	d.ParsedTags = parseTags(opts.Tags)
	d.IndividualPackage = !ws.HasRootPyproject()

	if opts.DevDependenciesProject != "" {
		shared, err := reg.Lookup(opts.DevDependenciesProject)
		if err != nil {
			return nil, err
		}

		rel, err := filepath.Rel(d.ProjectRoot, shared.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path to %s: %w", opts.DevDependenciesProject, err)
		}
		d.DevDependenciesProjectPath = filepath.ToSlash(rel)
	}

	return d, nil
}

// pytestAddopts assembles the pytest invocation argument string. Report
// paths are relative to the workspace root via the project root offset.
func pytestAddopts(d *models.ProjectDescriptor) string {
	if d.UnitTestRunner != models.TestRunnerPytest {
		return ""
	}

	offset := offsetFromRoot(d.ProjectRoot)
	var args []string
	if d.CodeCoverage {
		args = append(args, "--cov")
	}
	if d.CodeCoverageThreshold > 0 {
		args = append(args, fmt.Sprintf("--cov-fail-under=%d", d.CodeCoverageThreshold))
	}
	if d.CodeCoverageHTMLReport {
		args = append(args, fmt.Sprintf("--cov-report html:'%scoverage/%s/html'", offset, d.ProjectRoot))
	}
	if d.CodeCoverageXMLReport {
		args = append(args, fmt.Sprintf("--cov-report xml:'%scoverage/%s/coverage.xml'", offset, d.ProjectRoot))
	}
	if d.UnitTestHTMLReport {
		args = append(args, fmt.Sprintf("--html='%sreports/%s/unittests/html/index.html'", offset, d.ProjectRoot))
	}
	if d.UnitTestJUnitReport {
		args = append(args, fmt.Sprintf("--junitxml='%sreports/%s/unittests/junit.xml'", offset, d.ProjectRoot))
	}

	return strings.Join(args, " ")
}

// offsetFromRoot returns the ../ chain from a workspace-relative project
// root back up to the workspace root.
func offsetFromRoot(root string) string {
	depth := strings.Count(path.Clean(filepath.ToSlash(root)), "/") + 1
	return strings.Repeat("../", depth)
}

// toFileName slugifies a name into a canonical project identifier.
func toFileName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '-':
			b.WriteRune('-')
		}
	}

	return strings.Trim(b.String(), "-")
}

func slugifyDirectory(dir string) string {
	segments := strings.Split(filepath.ToSlash(dir), "/")
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			continue
		}
		out = append(out, toFileName(s))
	}
	return strings.Join(out, "/")
}

func parseTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}

	var parsed []string
	for _, tag := range strings.Split(tags, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			parsed = append(parsed, t)
		}
	}
	return parsed
}
