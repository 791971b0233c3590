package poetry

import (
	"errors"
	"testing"

	"github.com/pymono-dev/pymono/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConstraint(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    bool
	}{
		{name: "range", constraint: ">=3.9,<4", wantErr: false},
		{name: "caret", constraint: "^3.11", wantErr: false},
		{name: "tilde", constraint: "~3.10.2", wantErr: false},
		{name: "exact", constraint: "3.9.5", wantErr: false},
		{name: "garbage", constraint: "not a version", wantErr: true},
		{name: "empty", constraint: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConstraint("python-dependency", tt.constraint)
			if tt.wantErr {
				require.Error(t, err)

				var validationErr *models.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, "python-dependency", validationErr.Field)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateVersion(t *testing.T) {
	assert.NoError(t, ValidateVersion("pyenv-version", "3.9.5"))
	assert.NoError(t, ValidateVersion("pyenv-version", "3.12.0"))
	assert.Error(t, ValidateVersion("pyenv-version", "latest"))
	assert.Error(t, ValidateVersion("pyenv-version", ""))
}
