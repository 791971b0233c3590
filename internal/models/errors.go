package models

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or missing required input. Generation
// aborts before any write when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a lookup of an unregistered project.
type NotFoundError struct {
	Project string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project %s is not registered in the workspace", e.Project)
}

// ManifestParseError reports a manifest document that failed to parse.
// Nothing is written when one is returned.
type ManifestParseError struct {
	Path string
	Err  error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("failed to parse manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestParseError) Unwrap() error { return e.Err }

// ExternalToolError reports an abnormal exit of the external package
// manager. It surfaces after the commit step; prior writes stay committed.
type ExternalToolError struct {
	Tool string
	Args []string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
