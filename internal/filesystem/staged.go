package filesystem

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const tmpSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Staged buffers writes on top of a base FileSystem until Flush commits
// them durably. Reads observe staged content before falling back to the
// base, so a generation run behaves as a single logical transaction: no
// file is touched on disk until every mutation has succeeded in memory.
type Staged struct {
	base   FileSystem
	writes map[string]stagedFile
	dirs   map[string]fs.FileMode
}

type stagedFile struct {
	data []byte
	perm fs.FileMode
}

// NewStaged creates a staged view over base.
func NewStaged(base FileSystem) *Staged {
	return &Staged{
		base:   base,
		writes: make(map[string]stagedFile),
		dirs:   make(map[string]fs.FileMode),
	}
}

func (s *Staged) ReadFile(path string) ([]byte, error) {
	if f, ok := s.writes[filepath.Clean(path)]; ok {
		return f.data, nil
	}
	return s.base.ReadFile(path)
}

func (s *Staged) WriteFile(path string, data []byte, perm fs.FileMode) error {
	s.writes[filepath.Clean(path)] = stagedFile{data: data, perm: perm}
	return nil
}

func (s *Staged) Rename(oldPath, newPath string) error {
	cleanOld := filepath.Clean(oldPath)
	if f, ok := s.writes[cleanOld]; ok {
		delete(s.writes, cleanOld)
		s.writes[filepath.Clean(newPath)] = f
		return nil
	}
	return s.base.Rename(oldPath, newPath)
}

func (s *Staged) MkdirAll(path string, perm fs.FileMode) error {
	s.dirs[filepath.Clean(path)] = perm
	return nil
}

func (s *Staged) Stat(path string) (fs.FileInfo, error) {
	clean := filepath.Clean(path)
	if f, ok := s.writes[clean]; ok {
		return &mockFileInfo{
			name:    filepath.Base(clean),
			size:    int64(len(f.data)),
			mode:    f.perm,
			modTime: time.Now(),
		}, nil
	}
	if perm, ok := s.dirs[clean]; ok {
		return &mockFileInfo{
			name:    filepath.Base(clean),
			mode:    perm | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		}, nil
	}
	return s.base.Stat(path)
}

func (s *Staged) Exists(path string) bool {
	clean := filepath.Clean(path)
	if _, ok := s.writes[clean]; ok {
		return true
	}
	if _, ok := s.dirs[clean]; ok {
		return true
	}
	return s.base.Exists(path)
}

func (s *Staged) Getwd() (string, error) {
	return s.base.Getwd()
}

// WalkDir walks the base tree. Staged-only entries are not visible;
// discovery happens before mutation in a generation run.
func (s *Staged) WalkDir(root string, fn fs.WalkDirFunc) error {
	return s.base.WalkDir(root, fn)
}

// Pending returns the paths of all staged writes, sorted.
func (s *Staged) Pending() []string {
	paths := make([]string, 0, len(s.writes))
	for p := range s.writes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Flush commits all staged directories and writes to the base filesystem
// in deterministic order. Each file lands via a uniquely suffixed
// temporary sibling and a rename, so a crash mid-flush never leaves a
// half-written file behind.
func (s *Staged) Flush() error {
	dirs := make([]string, 0, len(s.dirs))
	for d := range s.dirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	for _, d := range dirs {
		if err := s.base.MkdirAll(d, s.dirs[d]); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	for _, p := range s.Pending() {
		f := s.writes[p]

		dir := filepath.Dir(p)
		if err := s.base.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		suffix, err := gonanoid.Generate(tmpSuffixAlphabet, 8)
		if err != nil {
			return fmt.Errorf("failed to generate temp suffix: %w", err)
		}

		tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(p), suffix))
		if err := s.base.WriteFile(tmp, f.data, f.perm); err != nil {
			return fmt.Errorf("failed to write %s: %w", tmp, err)
		}
		if err := s.base.Rename(tmp, p); err != nil {
			return fmt.Errorf("failed to commit %s: %w", p, err)
		}
	}

	s.writes = make(map[string]stagedFile)
	s.dirs = make(map[string]fs.FileMode)
	return nil
}
