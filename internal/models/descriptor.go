package models

// ProjectDescriptor is the fully normalized form of ProjectOptions.
//
// Every field left unset by the caller carries its documented default, so
// the descriptor is deterministic given the same options and workspace
// state. It is built once by the normalizer and treated as read-only by
// all downstream components.
type ProjectDescriptor struct {
	ProjectOptions

	// ProjectName is the canonical, slugified project identifier.
	ProjectName string

	// ProjectRoot is the workspace-relative root of the new project.
	ProjectRoot string

	// ModuleName is the identifier-safe importable module name
	// (ProjectName with separators replaced by underscores).
	ModuleName string

	// PackageName is the distributable package name.
	PackageName string

	// PytestAddopts is the synthesized pytest invocation argument string.
	// Empty unless the test runner is pytest.
	PytestAddopts string

	// DevDependenciesProjectPath is the relative path from ProjectRoot to
	// the shared dev-dependency project root, when one was named.
	DevDependenciesProjectPath string

	// ParsedTags is the split and trimmed tag list.
	ParsedTags []string

	// IndividualPackage is true exactly when no root pyproject.toml
	// exists in the workspace, i.e. the generated manifest stands alone.
	IndividualPackage bool
}
