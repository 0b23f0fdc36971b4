package system_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/speakeasy-api/jsxlint/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T) *system.FileSystem {
	t.Helper()

	fsys := system.NewFileSystem(memfs.New())
	files := map[string]string{
		"project/src/App.jsx":                   "app",
		"project/src/util.js":                   "util",
		"project/src/styles.css":                "css",
		"project/src/legacy/old.mjs":            "old",
		"project/src/vendor/lib.js":             "lib",
		"project/src/bundle.min.js":             "min",
		"project/node_modules/inferno/index.js": "dep",
		"project/scripts/build.cjs":             "build",
		"project/README.md":                     "readme",
	}
	for name, content := range files {
		require.NoError(t, fsys.WriteFile(name, []byte(content), 0o644))
	}
	return fsys
}

func TestFileSystem_Discover_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		roots    []string
		ignores  []string
		expected []string
	}{
		{
			name:  "walks directories for source files",
			roots: []string{"project"},
			expected: []string{
				"project/scripts/build.cjs",
				"project/src/App.jsx",
				"project/src/bundle.min.js",
				"project/src/legacy/old.mjs",
				"project/src/util.js",
				"project/src/vendor/lib.js",
			},
		},
		{
			name:    "ignore globs skip files and directories",
			roots:   []string{"project/src"},
			ignores: []string{"**/vendor/**", "*.min.js", "legacy"},
			expected: []string{
				"project/src/App.jsx",
				"project/src/util.js",
			},
		},
		{
			name:    "brace alternation in ignores",
			roots:   []string{"project"},
			ignores: []string{"**/*.{cjs,mjs}", "**/{vendor,legacy}/**"},
			expected: []string{
				"project/src/App.jsx",
				"project/src/bundle.min.js",
				"project/src/util.js",
			},
		},
		{
			name:     "explicit files are kept regardless of extension",
			roots:    []string{"project/README.md", "project/src/App.jsx", "project/src"},
			ignores:  []string{"**/vendor/**", "*.min.js", "**/legacy/**"},
			expected: []string{"project/README.md", "project/src/App.jsx", "project/src/util.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := newProject(t)
			files, err := fsys.Discover(tt.roots, tt.ignores)
			require.NoError(t, err)

			got := make([]string, 0, len(files))
			for _, f := range files {
				got = append(got, filepath.ToSlash(filepath.Clean(f)))
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFileSystem_Discover_Error(t *testing.T) {
	t.Parallel()

	fsys := newProject(t)
	_, err := fsys.Discover([]string{"missing"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestFileSystem_ReadWrite_Success(t *testing.T) {
	t.Parallel()

	fsys := system.NewInMemoryFileSystem()
	require.NoError(t, fsys.WriteFile("a/b/c.jsx", []byte("one"), 0o644))
	require.NoError(t, fsys.WriteFile("a/b/c.jsx", []byte("two"), 0o600))

	data, err := fsys.ReadFile("a/b/c.jsx")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	f, err := fsys.Open("a/b/c.jsx")
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "c.jsx", info.Name())
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "two", string(content))

	_, err = fsys.ReadFile("nope.js")
	require.Error(t, err)
}

func TestFileSystem_OS_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fsys := system.NewOSFileSystem()
	path := filepath.Join(dir, "nested", "a.jsx")
	require.NoError(t, fsys.WriteFile(path, []byte("<br />"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<br />", string(data))

	files, err := fsys.Discover([]string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)

	matches, err := fsys.Glob(filepath.Join(dir, "nested", "*.jsx"))
	require.NoError(t, err)
	assert.Equal(t, []string{path}, matches)
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern  string
		name     string
		expected bool
	}{
		{pattern: "*.min.js", name: "dist/app.min.js", expected: true},
		{pattern: "*.min.js", name: "dist/app.js", expected: false},
		{pattern: "**/vendor/**", name: "src/vendor/lib.js", expected: true},
		{pattern: "**/vendor/**", name: "/home/me/project/vendor/a/b.js", expected: true},
		{pattern: "**/vendor/**", name: "src/vendors/lib.js", expected: false},
		{pattern: "src/*.jsx", name: "src/App.jsx", expected: true},
		{pattern: "src/*.jsx", name: "src/components/App.jsx", expected: false},
		{pattern: "src/**/*.jsx", name: "src/App.jsx", expected: true},
		{pattern: "./src/**", name: "src/a/b/c.js", expected: true},
		{pattern: "", name: "a.js", expected: false},
		{pattern: "**/*.{js,jsx}", name: "src/a.jsx", expected: true},
		{pattern: "**/*.{js,jsx}", name: "src/a.mjs", expected: false},
		{pattern: "*.{test,spec}.jsx", name: "src/App.test.jsx", expected: true},
		{pattern: "src/[ab].js", name: "src/b.js", expected: true},
		{pattern: "src/[", name: "src/[", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, system.MatchGlob(tt.pattern, tt.name))
		})
	}
}
