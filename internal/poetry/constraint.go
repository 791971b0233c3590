package poetry

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pymono-dev/pymono/internal/models"
)

// ValidateConstraint checks that a user-supplied version constraint is
// parseable. Poetry's caret/tilde/range syntax matches semver constraint
// syntax for the forms this tool writes.
func ValidateConstraint(field, constraint string) error {
	normalized := strings.ReplaceAll(constraint, ",", ", ")
	if _, err := semver.NewConstraint(normalized); err != nil {
		return &models.ValidationError{Field: field, Reason: err.Error()}
	}
	return nil
}

// ValidateVersion checks that a user-supplied interpreter pin is a plain
// version.
func ValidateVersion(field, version string) error {
	if _, err := semver.NewVersion(version); err != nil {
		return &models.ValidationError{Field: field, Reason: err.Error()}
	}
	return nil
}
