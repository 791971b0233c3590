package cli

import (
	"fmt"

	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/poetry"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, runner poetry.Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pymono",
		Short: "Scaffold Poetry projects inside a monorepo",
		Long: `A CLI tool for managing Poetry-based Python projects in monorepos.

It scaffolds new sub-projects and keeps their dependency declarations
synchronized with the shared root pyproject.toml.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(NewGenerateCommand(fs, runner))
	rootCmd.AddCommand(NewListCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	runner := poetry.NewOSRunner()

	rootCmd := NewRootCommand(fs, runner)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
