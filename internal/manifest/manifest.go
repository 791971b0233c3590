// Package manifest reads and writes the Poetry pyproject.toml documents
// the generator manages. Only the dependency area and its group container
// are ever touched; everything else round-trips through parse/serialize.
package manifest

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pymono-dev/pymono/internal/filesystem"
	"github.com/pymono-dev/pymono/internal/models"
)

// FileName is the manifest file name Poetry expects.
const FileName = "pyproject.toml"

// MainGroup is the implicit dependency group (tool.poetry.dependencies).
const MainGroup = "main"

// DevGroup is the conventional development dependency group.
const DevGroup = "dev"

// DependencySet maps dependency name to its declaration: a version
// constraint string or a table such as PathDependency.
type DependencySet map[string]any

// PathDependency declares a dependency on another project's location on
// disk rather than on a published package version.
type PathDependency struct {
	Path    string `toml:"path"`
	Develop bool   `toml:"develop"`
}

// Document is a parsed pyproject.toml.
type Document struct {
	path string
	data map[string]any
}

// New creates an empty document that will be saved at path.
func New(path string) *Document {
	return &Document{path: path, data: map[string]any{}}
}

// Load reads and parses the manifest at path.
func Load(fs filesystem.FileSystem, path string) (*Document, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, &models.ManifestParseError{Path: path, Err: err}
	}

	return &Document{path: path, data: parsed}, nil
}

// Path returns the location this document is saved at.
func (d *Document) Path() string {
	return d.path
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	out, err := toml.Marshal(d.data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize manifest %s: %w", d.path, err)
	}
	return out, nil
}

// Save serializes the document and writes it back to its path.
func (d *Document) Save(fs filesystem.FileSystem) error {
	out, err := d.Bytes()
	if err != nil {
		return err
	}

	if err := fs.WriteFile(d.path, out, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", d.path, err)
	}
	return nil
}

// groupKeys returns the key path of a dependency group's mapping. The
// "main" group is the implicit tool.poetry.dependencies table; any other
// name addresses tool.poetry.group.<name>.dependencies.
func groupKeys(group string) []string {
	if group == MainGroup {
		return []string{"tool", "poetry", "dependencies"}
	}
	return []string{"tool", "poetry", "group", group, "dependencies"}
}

// table walks the nested key path, optionally creating missing tables.
// Existing tables are reused as-is, so sibling keys are never clobbered.
func (d *Document) table(create bool, keys ...string) map[string]any {
	current := d.data
	for _, key := range keys {
		if next, ok := current[key].(map[string]any); ok {
			current = next
			continue
		}
		if !create {
			return nil
		}
		next := map[string]any{}
		current[key] = next
		current = next
	}
	return current
}

// Dependencies returns a copy of the group's dependency mapping. A
// missing group yields an empty set.
func (d *Document) Dependencies(group string) DependencySet {
	deps := DependencySet{}
	table := d.table(false, groupKeys(group)...)
	for name, value := range table {
		deps[name] = value
	}
	return deps
}

// SetDependencies replaces the entries of a group's dependency mapping.
// The group table is created if absent; its sibling keys (and sibling
// groups) are preserved.
func (d *Document) SetDependencies(group string, deps DependencySet) {
	table := d.table(true, groupKeys(group)...)
	for name := range table {
		delete(table, name)
	}
	for name, value := range deps {
		table[name] = value
	}
}

// AddDependency adds an entry to a group only when the name is absent.
// Existing entries are never overwritten.
func (d *Document) AddDependency(group, name string, value any) {
	table := d.table(true, groupKeys(group)...)
	if _, exists := table[name]; exists {
		return
	}
	table[name] = value
}

// HasDependency reports whether the group declares the named dependency.
func (d *Document) HasDependency(group, name string) bool {
	table := d.table(false, groupKeys(group)...)
	if table == nil {
		return false
	}
	_, ok := table[name]
	return ok
}
