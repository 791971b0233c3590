package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/models"
	"github.com/pymono-dev/pymono/internal/tui"
	"github.com/pymono-dev/pymono/internal/workspace"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	fs filesystem.FileSystem
}

// ListOutput represents the complete list output
type ListOutput struct {
	Projects []*models.ProjectConfiguration `json:"projects"`
}

// NewListCommand creates a new list command
func NewListCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ListCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		Long:  `Lists all projects registered in the workspace.`,
		Example: `  # Show projects in human-readable format
  pymono list

  # Output JSON for scripting
  pymono list --format json`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the list command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	ws := workspace.New(c.fs)
	if err := ws.Detect(); err != nil {
		return fmt.Errorf("failed to detect workspace: %w", err)
	}

	projects, err := workspace.NewRegistry(c.fs, ws).List()
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if format == "json" {
		return c.outputJSON(cmd, projects)
	}
	return c.outputText(cmd, projects)
}

func (c *ListCommand) outputText(cmd *cobra.Command, projects []*models.ProjectConfiguration) error {
	out := cmd.OutOrStdout()

	if len(projects) == 0 {
		_, _ = fmt.Fprintln(out, tui.SubtleStyle.Render("No projects registered."))
		return nil
	}

	_, _ = fmt.Fprintln(out, tui.TitleStyle.Render(fmt.Sprintf("Projects (%d)", len(projects))))
	for _, p := range projects {
		line := fmt.Sprintf("%s  %s", tui.SelectedStyle.Render(p.Name), tui.SubtleStyle.Render(p.Root))
		if p.Kind != "" {
			line += "  " + tui.DescStyle.Render(string(p.Kind))
		}
		if len(p.Tags) > 0 {
			line += "  " + tui.DescStyle.Render(strings.Join(p.Tags, ", "))
		}
		_, _ = fmt.Fprintln(out, line)
	}

	return nil
}

func (c *ListCommand) outputJSON(cmd *cobra.Command, projects []*models.ProjectConfiguration) error {
	output := ListOutput{Projects: projects}
	if output.Projects == nil {
		output.Projects = make([]*models.ProjectConfiguration, 0)
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
