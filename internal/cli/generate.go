package cli

import (
	"fmt"

	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/generator"
	"github.com/pymono-dev/pymono/internal/models"
	"github.com/pymono-dev/pymono/internal/poetry"
	tuigenerate "github.com/pymono-dev/pymono/internal/tui/generate"
	"github.com/spf13/cobra"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	fs     filesystem.FileSystem
	runner poetry.Runner

	kind           string
	linter         string
	unitTestRunner string
	interactive    bool
	skipLock       bool

	opts models.ProjectOptions
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(fs filesystem.FileSystem, runner poetry.Runner) *cobra.Command {
	cmd := &GenerateCommand{fs: fs, runner: runner}

	cobraCmd := &cobra.Command{
		Use:   "generate [name]",
		Short: "Generate a new Poetry project",
		Long: `Generate a new Poetry-managed Python project in the workspace.

The project is scaffolded below the apps or libs layout root, registered
in the workspace, and wired into the shared root pyproject.toml when one
exists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&cmd.opts.Directory, "directory", "", "sub-directory below the layout root")
	flags.StringVar(&cmd.kind, "kind", "", "project kind (application or library)")
	flags.StringVar(&cmd.opts.TemplateDir, "template-dir", "", "directory overriding the built-in templates")
	flags.StringVar(&cmd.linter, "linter", "", "linter to configure (flake8 or none)")
	flags.StringVar(&cmd.unitTestRunner, "unit-test-runner", "", "unit test runner (pytest or none)")
	flags.BoolVar(&cmd.opts.CodeCoverage, "code-coverage", false, "collect coverage when running tests")
	flags.IntVar(&cmd.opts.CodeCoverageThreshold, "code-coverage-threshold", 0, "fail tests below this coverage percentage")
	flags.BoolVar(&cmd.opts.CodeCoverageHTMLReport, "code-coverage-html-report", false, "emit an HTML coverage report")
	flags.BoolVar(&cmd.opts.CodeCoverageXMLReport, "code-coverage-xml-report", false, "emit an XML coverage report")
	flags.BoolVar(&cmd.opts.UnitTestHTMLReport, "unit-test-html-report", false, "emit an HTML unit test report")
	flags.BoolVar(&cmd.opts.UnitTestJUnitReport, "unit-test-junit-report", false, "emit a JUnit XML unit test report")
	flags.BoolVar(&cmd.opts.Publishable, "publishable", false, "mark the build target as publishable")
	flags.BoolVar(&cmd.opts.BuildLockedVersions, "build-locked-versions", true, "build with locked dependency versions")
	flags.BoolVar(&cmd.opts.BuildBundleLocalDependencies, "build-bundle-local-dependencies", true, "bundle local path dependencies into the build")
	flags.StringVar(&cmd.opts.DevDependenciesProject, "dev-dependencies-project", "", "registered project that receives shared dev dependencies")
	flags.StringVar(&cmd.opts.RootPyprojectDependencyGroup, "root-pyproject-dependency-group", "", "root manifest dependency group for the new project")
	flags.StringVar(&cmd.opts.PyprojectPythonDependency, "python-dependency", "", "python version constraint for the generated manifest")
	flags.StringVar(&cmd.opts.PyenvPythonVersion, "pyenv-version", "", "interpreter pin written to .python-version")
	flags.StringVar(&cmd.opts.Description, "description", "", "project description")
	flags.StringVar(&cmd.opts.Tags, "tags", "", "comma-separated project tags")
	flags.BoolVar(&cmd.interactive, "interactive", false, "prompt for options not given as flags")
	flags.BoolVar(&cmd.skipLock, "skip-lock", false, "skip the root lock file refresh")

	return cobraCmd
}

// Run executes the generate command
func (c *GenerateCommand) Run(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		c.opts.Name = args[0]
	}

	if err := c.parseEnumFlags(); err != nil {
		return err
	}

	opts := c.opts
	if c.interactive {
		flow := tuigenerate.NewFlow()
		filled, err := flow.Run(opts)
		if err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		if filled == nil {
			return nil
		}
		opts = *filled
	}

	result, err := generator.New(c.fs, c.runner).Generate(opts)
	if err != nil {
		return fmt.Errorf("failed to generate project: %w", err)
	}

	if err := result.Commit(); err != nil {
		return fmt.Errorf("failed to write generated files: %w", err)
	}

	if !c.skipLock {
		if err := result.RefreshLock(); err != nil {
			return fmt.Errorf("failed to refresh lock file: %w", err)
		}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), tuigenerate.RenderSuccess(result))

	return nil
}

func (c *GenerateCommand) parseEnumFlags() error {
	if c.kind != "" {
		kind, err := models.ParseProjectKind(c.kind)
		if err != nil {
			return err
		}
		c.opts.Kind = kind
	}
	if c.linter != "" {
		linter, err := models.ParseLinter(c.linter)
		if err != nil {
			return err
		}
		c.opts.Linter = linter
	}
	if c.unitTestRunner != "" {
		runner, err := models.ParseTestRunner(c.unitTestRunner)
		if err != nil {
			return err
		}
		c.opts.UnitTestRunner = runner
	}
	return nil
}
