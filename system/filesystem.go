// Package system provides file access for the linter on top of go-billy, so the same
// code runs against the OS in production and an in-memory filesystem in tests.
package system

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// SourceExtensions are the file extensions Discover collects from directories.
var SourceExtensions = []string{".js", ".jsx", ".mjs", ".cjs"}

// skippedDirs are never descended into.
var skippedDirs = []string{"node_modules", ".git"}

type VirtualFS interface {
	fs.FS
}

// FileSystem reads and writes source files.
type FileSystem struct {
	fs billy.Filesystem
	// absolute resolves relative paths against the working directory before they reach
	// an OS filesystem rooted at "/".
	absolute bool
}

var _ VirtualFS = (*FileSystem)(nil)

// NewOSFileSystem returns a FileSystem over the host filesystem.
func NewOSFileSystem() *FileSystem {
	return &FileSystem{fs: osfs.New("/"), absolute: true}
}

// NewInMemoryFileSystem returns an empty in-memory FileSystem.
func NewInMemoryFileSystem() *FileSystem {
	return &FileSystem{fs: memfs.New()}
}

// NewFileSystem wraps an existing billy filesystem.
func NewFileSystem(fsys billy.Filesystem) *FileSystem {
	return &FileSystem{fs: fsys}
}

func (f *FileSystem) resolve(name string) (string, error) {
	if !f.absolute || filepath.IsAbs(name) {
		return name, nil
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", name, err)
	}
	return abs, nil
}

// Open implements fs.FS.
func (f *FileSystem) Open(name string) (fs.File, error) {
	resolved, err := f.resolve(name)
	if err != nil {
		return nil, err
	}
	file, err := f.fs.Open(resolved)
	if err != nil {
		return nil, err
	}
	return &billyFile{File: file, fs: f.fs, name: resolved}, nil
}

// ReadFile returns the contents of a file.
func (f *FileSystem) ReadFile(name string) ([]byte, error) {
	resolved, err := f.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := util.ReadFile(f.fs, resolved)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return data, nil
}

// WriteFile replaces the contents of a file, creating parent directories as needed.
// An existing file keeps its permissions.
func (f *FileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	resolved, err := f.resolve(name)
	if err != nil {
		return err
	}
	if info, err := f.fs.Stat(resolved); err == nil {
		perm = info.Mode().Perm()
	}
	if dir := filepath.Dir(resolved); dir != "." {
		if err := f.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write %q: %w", name, err)
		}
	}
	if err := util.WriteFile(f.fs, resolved, data, perm); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return nil
}

// Stat returns the file info of name.
func (f *FileSystem) Stat(name string) (os.FileInfo, error) {
	resolved, err := f.resolve(name)
	if err != nil {
		return nil, err
	}
	return f.fs.Stat(resolved)
}

// Glob returns the files matching a path.Match pattern.
func (f *FileSystem) Glob(pattern string) ([]string, error) {
	resolved, err := f.resolve(pattern)
	if err != nil {
		return nil, err
	}
	matches, err := util.Glob(f.fs, resolved)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	return matches, nil
}

// Discover expands roots into source files. Files named directly are always returned;
// directories are walked for files with a SourceExtensions extension. node_modules, .git
// and paths matching an ignore pattern are skipped. Results keep discovery order and
// contain no duplicates.
func (f *FileSystem) Discover(roots []string, ignores []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range roots {
		resolved, err := f.resolve(root)
		if err != nil {
			return nil, err
		}
		info, err := f.fs.Stat(resolved)
		if err != nil {
			return nil, fmt.Errorf("discover %q: %w", root, err)
		}
		if !info.IsDir() {
			if !ignored(ignores, root, resolved) {
				add(resolved)
			}
			continue
		}

		err = util.Walk(f.fs, resolved, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			rel := relativeTo(resolved, p)
			if info.IsDir() {
				if p != resolved && (slices.Contains(skippedDirs, info.Name()) || ignored(ignores, rel, p)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !slices.Contains(SourceExtensions, strings.ToLower(filepath.Ext(p))) {
				return nil
			}
			if ignored(ignores, rel, p) {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discover %q: %w", root, err)
		}
	}

	return files, nil
}

func ignored(patterns []string, names ...string) bool {
	for _, name := range names {
		if MatchAny(patterns, name) {
			return true
		}
	}
	return false
}

func relativeTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return rel
}

type billyFile struct {
	billy.File
	fs   billy.Filesystem
	name string
}

func (b *billyFile) Stat() (fs.FileInfo, error) {
	return b.fs.Stat(b.name)
}
