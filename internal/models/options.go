package models

import "fmt"

// ProjectKind represents the kind of project being generated.
type ProjectKind string

const (
	ProjectKindApplication ProjectKind = "application"
	ProjectKindLibrary     ProjectKind = "library"
)

// ParseProjectKind parses a project kind from user input.
func ParseProjectKind(s string) (ProjectKind, error) {
	switch ProjectKind(s) {
	case ProjectKindApplication, ProjectKindLibrary:
		return ProjectKind(s), nil
	}
	return "", &ValidationError{Field: "kind", Reason: fmt.Sprintf("must be %q or %q, got %q", ProjectKindApplication, ProjectKindLibrary, s)}
}

// Linter identifies the configured lint tool.
type Linter string

const (
	LinterFlake8 Linter = "flake8"
	LinterNone   Linter = "none"
)

// ParseLinter parses a linter choice from user input.
func ParseLinter(s string) (Linter, error) {
	switch Linter(s) {
	case LinterFlake8, LinterNone:
		return Linter(s), nil
	}
	return "", &ValidationError{Field: "linter", Reason: fmt.Sprintf("must be %q or %q, got %q", LinterFlake8, LinterNone, s)}
}

// TestRunner identifies the configured unit test runner.
type TestRunner string

const (
	TestRunnerPytest TestRunner = "pytest"
	TestRunnerNone   TestRunner = "none"
)

// ParseTestRunner parses a test runner choice from user input.
func ParseTestRunner(s string) (TestRunner, error) {
	switch TestRunner(s) {
	case TestRunnerPytest, TestRunnerNone:
		return TestRunner(s), nil
	}
	return "", &ValidationError{Field: "unit-test-runner", Reason: fmt.Sprintf("must be %q or %q, got %q", TestRunnerPytest, TestRunnerNone, s)}
}

// ProjectOptions is the raw, partially specified input to the generator.
// Empty fields are filled with documented defaults during normalization.
type ProjectOptions struct {
	// Name is the project name (required).
	Name string

	// Directory is an optional sub-directory below the layout root.
	Directory string

	// Kind selects between application and library layout roots.
	Kind ProjectKind

	// TemplateDir overrides the embedded template set.
	TemplateDir string

	Linter         Linter
	UnitTestRunner TestRunner

	CodeCoverage           bool
	CodeCoverageThreshold  int
	CodeCoverageHTMLReport bool
	CodeCoverageXMLReport  bool
	UnitTestHTMLReport     bool
	UnitTestJUnitReport    bool

	Publishable                  bool
	BuildLockedVersions          bool
	BuildBundleLocalDependencies bool

	// DevDependenciesProject names an already-registered project whose
	// manifest receives the shared dev dependencies instead of the root.
	DevDependenciesProject string

	// RootPyprojectDependencyGroup is the root manifest dependency group
	// the new project is registered into. Defaults to "main".
	RootPyprojectDependencyGroup string

	// PyprojectPythonDependency is the python version constraint written
	// into the generated manifest.
	PyprojectPythonDependency string

	// PyenvPythonVersion is the interpreter pin for .python-version.
	PyenvPythonVersion string

	Description string

	// Tags is a comma-separated tag list.
	Tags string
}
