package models

// TargetDescriptor is a named automation task attached to a project
// registration record. It is computed once at generation time and never
// mutated afterwards by this tool.
type TargetDescriptor struct {
	// Executor identifies the task implementation, e.g. "pymono:build".
	Executor string `json:"executor"`

	// Options holds static executor options.
	Options map[string]any `json:"options,omitempty"`

	// Outputs declares output locations produced by the target.
	Outputs []string `json:"outputs,omitempty"`
}

// ProjectConfiguration is the registry record for a generated project.
type ProjectConfiguration struct {
	Name       string                      `json:"name"`
	Root       string                      `json:"root"`
	SourceRoot string                      `json:"sourceRoot"`
	Kind       ProjectKind                 `json:"projectType"`
	Targets    map[string]TargetDescriptor `json:"targets"`
	Tags       []string                    `json:"tags,omitempty"`
}
