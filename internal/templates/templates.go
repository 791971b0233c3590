// Package templates materializes the file tree of a new project from a
// template set: the embedded defaults for each project kind, or a
// caller-supplied override directory.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/adrg/frontmatter"
	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/manifest"
	"github.com/pymono-dev/pymono/internal/models"
	"github.com/pymono-dev/pymono/internal/workspace"
)

//go:embed all:templates
var embedded embed.FS

// templateSuffix marks files that are rendered; everything else is
// copied verbatim.
const templateSuffix = ".tmpl"

// moduleNameToken is replaced with the project's module name in output
// paths.
const moduleNameToken = "__moduleName__"

// Data is the rendering input: the descriptor plus the dev dependency
// set written into the project's own manifest when it stands alone.
type Data struct {
	*models.ProjectDescriptor

	DevDependencies manifest.DependencySet
}

// meta is the optional frontmatter header of a template file.
type meta struct {
	// Path overrides the output path (relative to the project root).
	Path string `yaml:"path"`

	// When gates the file on a descriptor toggle: flake8, pytest or
	// coverage.
	When string `yaml:"when"`
}

// Materialize renders the template set for the descriptor into the new
// project's root.
func Materialize(fsys filesystem.FileSystem, ws *workspace.Workspace, data Data) error {
	if data.TemplateDir != "" {
		return materializeDir(fsys, ws, data)
	}
	return materializeEmbedded(fsys, ws, data)
}

func materializeEmbedded(fsys filesystem.FileSystem, ws *workspace.Workspace, data Data) error {
	base := path.Join("templates", string(data.Kind))

	return fs.WalkDir(embedded, base, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		content, err := embedded.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", p, err)
		}

		rel := strings.TrimPrefix(p, base+"/")
		return renderFile(fsys, ws, data, rel, content)
	})
}

func materializeDir(fsys filesystem.FileSystem, ws *workspace.Workspace, data Data) error {
	dir := data.TemplateDir
	if !filepath.IsAbs(dir) {
		dir = ws.AbsPath(dir)
	}
	if !fsys.Exists(dir) {
		return &models.ValidationError{Field: "template-dir", Reason: fmt.Sprintf("directory %s does not exist", dir)}
	}

	return fsys.WalkDir(dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		content, err := fsys.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", p, err)
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		return renderFile(fsys, ws, data, filepath.ToSlash(rel), content)
	})
}

func renderFile(fsys filesystem.FileSystem, ws *workspace.Workspace, data Data, rel string, content []byte) error {
	var header meta
	body, err := frontmatter.Parse(bytes.NewReader(content), &header)
	if err != nil {
		return fmt.Errorf("failed to parse template header of %s: %w", rel, err)
	}

	include, err := evaluateWhen(header.When, data.ProjectDescriptor)
	if err != nil {
		return fmt.Errorf("template %s: %w", rel, err)
	}
	if !include {
		return nil
	}

	out := rel
	if header.Path != "" {
		out = header.Path
	}
	out = strings.TrimSuffix(out, templateSuffix)
	out = strings.ReplaceAll(out, moduleNameToken, data.ModuleName)

	rendered := body
	if strings.HasSuffix(rel, templateSuffix) {
		tmpl, err := template.New(path.Base(rel)).Funcs(sprig.FuncMap()).Parse(string(body))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", rel, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("failed to render template %s: %w", rel, err)
		}
		rendered = buf.Bytes()
	}

	target := ws.AbsPath(path.Join(data.ProjectRoot, out))
	if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}
	if err := fsys.WriteFile(target, rendered, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

func evaluateWhen(when string, d *models.ProjectDescriptor) (bool, error) {
	switch when {
	case "":
		return true, nil
	case "flake8":
		return d.Linter == models.LinterFlake8, nil
	case "pytest":
		return d.UnitTestRunner == models.TestRunnerPytest, nil
	case "coverage":
		return d.CodeCoverage, nil
	}
	return false, fmt.Errorf("unknown 'when' condition %q", when)
}
