package generate

import (
	"fmt"
	"strings"

	"github.com/pymono-dev/pymono/internal/generator"
	"github.com/pymono-dev/pymono/internal/tui"
)

// RenderSuccess renders a summary after a project has been generated.
func RenderSuccess(result *generator.Result) string {
	var b strings.Builder

	b.WriteString(tui.SuccessStyle.Render(fmt.Sprintf("✓ Generated %s", result.Descriptor.ProjectName)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Project root: %s\n", result.Descriptor.ProjectRoot))
	if len(result.CreatedFiles) > 0 {
		b.WriteString("\nCreated files:\n")
		for _, file := range result.CreatedFiles {
			b.WriteString(fmt.Sprintf("  %s\n", tui.SubtleStyle.Render(file)))
		}
	}

	return b.String()
}
