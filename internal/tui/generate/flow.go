package generate

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/pymono-dev/pymono/internal/models"
	"github.com/pymono-dev/pymono/internal/tui"
)

// Flow collects missing project options using huh forms.
type Flow struct {
	theme *huh.Theme
}

// NewFlow constructs a Flow with the shared huh theme.
func NewFlow() *Flow {
	return &Flow{
		theme: tui.NewHuhTheme(),
	}
}

// Run fills in the unset fields of opts interactively. A nil result
// without an error means the user aborted.
func (f *Flow) Run(opts models.ProjectOptions) (*models.ProjectOptions, error) {
	if strings.TrimSpace(opts.Name) == "" {
		name, err := f.inputName()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, nil
			}
			return nil, err
		}
		opts.Name = name
	}

	if opts.Kind == "" {
		kind, err := f.selectKind()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, nil
			}
			return nil, err
		}
		opts.Kind = kind
	}

	if opts.Linter == "" {
		linter, err := f.selectLinter()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, nil
			}
			return nil, err
		}
		opts.Linter = linter
	}

	if opts.UnitTestRunner == "" {
		runner, err := f.selectTestRunner()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, nil
			}
			return nil, err
		}
		opts.UnitTestRunner = runner
	}

	if opts.UnitTestRunner == models.TestRunnerPytest && !opts.CodeCoverage {
		coverage, err := f.confirmCoverage()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, nil
			}
			return nil, err
		}
		opts.CodeCoverage = coverage
	}

	return &opts, nil
}

func (f *Flow) inputName() (string, error) {
	name := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Value(&name).
				Placeholder("my-service").
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
		).
			Title("Project Name").
			Description("Name of the new project."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		return "", err
	}

	return strings.TrimSpace(name), nil
}

func (f *Flow) selectKind() (models.ProjectKind, error) {
	kind := ""

	opts := []huh.Option[string]{
		huh.NewOption("application — deployable service or tool", string(models.ProjectKindApplication)),
		huh.NewOption("library — shared package consumed by other projects", string(models.ProjectKindLibrary)),
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&kind),
		).
			Title("Project Type").
			Description("How the project will be used in the workspace."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return models.ProjectKind(""), err
	}

	return models.ParseProjectKind(kind)
}

func (f *Flow) selectLinter() (models.Linter, error) {
	linter := ""

	opts := []huh.Option[string]{
		huh.NewOption("flake8 — style checks with a generated .flake8 config", string(models.LinterFlake8)),
		huh.NewOption("none — no lint target", string(models.LinterNone)),
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&linter),
		).
			Title("Linter").
			Description("Static analysis for the new project."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return models.Linter(""), err
	}

	return models.ParseLinter(linter)
}

func (f *Flow) selectTestRunner() (models.TestRunner, error) {
	runner := ""

	opts := []huh.Option[string]{
		huh.NewOption("pytest — unit tests with optional coverage", string(models.TestRunnerPytest)),
		huh.NewOption("none — no test target", string(models.TestRunnerNone)),
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&runner),
		).
			Title("Test Runner").
			Description("Unit testing for the new project."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return models.TestRunner(""), err
	}

	return models.ParseTestRunner(runner)
}

func (f *Flow) confirmCoverage() (bool, error) {
	coverage := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Value(&coverage).
				Affirmative("Yes").
				Negative("No"),
		).
			Title("Code Coverage").
			Description("Collect coverage when running the test target?"),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		return false, err
	}

	return coverage, nil
}
