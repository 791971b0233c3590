package generate

import (
	"testing"

	"github.com/pymono-dev/pymono/internal/generator"
	"github.com/pymono-dev/pymono/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderSuccess(t *testing.T) {
	result := &generator.Result{
		Descriptor: &models.ProjectDescriptor{
			ProjectName: "my-service",
			ProjectRoot: "apps/my-service",
		},
		CreatedFiles: []string{
			"apps/my-service/pyproject.toml",
			"apps/my-service/project.json",
		},
	}

	out := RenderSuccess(result)

	assert.Contains(t, out, "Generated my-service")
	assert.Contains(t, out, "apps/my-service")
	assert.Contains(t, out, "pyproject.toml")
}
