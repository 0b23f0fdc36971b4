package cache_test

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/speakeasy-api/jsxlint/cache"
	"github.com/speakeasy-api/jsxlint/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *cache.Manager {
	t.Helper()
	m, err := cache.OpenInMemory(t.Context())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func sampleResults() []error {
	fixable := validation.NewValidationError(
		validation.SeverityError,
		"jsx-props-class-name",
		errors.New("Invalid attribute 'class' found, use 'className' instead"),
		&validation.Location{Line: 1, Column: 16, EndLine: 1, EndColumn: 27},
	)
	fixable.NodeType = "JSXAttribute"
	fixable.Fix = &validation.ReplaceFix{
		Desc: "Replace 'class' with 'className'",
		Edit: validation.TextEdit{Start: 15, End: 20, NewText: "className"},
	}

	plain := validation.NewValidationError(
		validation.SeverityWarning,
		"destructuring-assignment",
		errors.New("Must use destructuring props assignment"),
		&validation.Location{Line: 3, Column: 10},
	)
	plain.NodeType = "MemberExpression"

	return []error{fixable, plain}
}

func TestManager_PutGet_Success(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	m := openTestCache(t)

	require.NoError(t, m.Put(ctx, "src/a.jsx", "key-1", sampleResults()))

	results, ok, err := m.Get(ctx, "src/a.jsx", "key-1")
	require.NoError(t, err)
	require.True(t, ok, "entry should be found")
	require.Len(t, results, 2)

	assert.Equal(t, "[1:16] error jsx-props-class-name Invalid attribute 'class' found, use 'className' instead", results[0].Error())
	assert.Equal(t, "[3:10] warning destructuring-assignment Must use destructuring props assignment", results[1].Error())

	var vErr *validation.Error
	require.True(t, errors.As(results[0], &vErr))
	assert.Equal(t, "JSXAttribute", vErr.NodeType)
	assert.Equal(t, &validation.Location{Line: 1, Column: 16, EndLine: 1, EndColumn: 27}, vErr.Location)
	require.NotNil(t, vErr.Fix, "fix should be restored")
	assert.Equal(t, "Replace 'class' with 'className'", vErr.Fix.Description())
	assert.Equal(t, []validation.TextEdit{{Start: 15, End: 20, NewText: "className"}}, vErr.Fix.Edits())

	require.True(t, errors.As(results[1], &vErr))
	assert.Nil(t, vErr.Fix)
}

func TestManager_Get_Miss(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	m := openTestCache(t)

	require.NoError(t, m.Put(ctx, "src/a.jsx", "key-1", sampleResults()))

	tests := []struct {
		name string
		path string
		key  string
	}{
		{name: "unknown path", path: "src/b.jsx", key: "key-1"},
		{name: "stale key", path: "src/a.jsx", key: "key-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, ok, err := m.Get(ctx, tt.path, tt.key)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, results)
		})
	}
}

func TestManager_Put_EmptyResults(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	m := openTestCache(t)

	require.NoError(t, m.Put(ctx, "clean.jsx", "key", nil))

	results, ok, err := m.Get(ctx, "clean.jsx", "key")
	require.NoError(t, err)
	assert.True(t, ok, "a clean file is a cache hit")
	assert.Empty(t, results)
}

func TestManager_Put_Replaces(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	m := openTestCache(t)

	require.NoError(t, m.Put(ctx, "a.jsx", "old", sampleResults()))
	require.NoError(t, m.Put(ctx, "a.jsx", "new", sampleResults()[1:]))

	_, ok, err := m.Get(ctx, "a.jsx", "old")
	require.NoError(t, err)
	assert.False(t, ok)

	results, ok, err := m.Get(ctx, "a.jsx", "new")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, results, 1)

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)
}

func TestManager_Put_UncacheableResults(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	m := openTestCache(t)

	require.NoError(t, m.Put(ctx, "a.jsx", "key", sampleResults()))
	require.NoError(t, m.Put(ctx, "a.jsx", "key", []error{errors.New("rule custom: execution timeout exceeded (5s)")}))

	_, ok, err := m.Get(ctx, "a.jsx", "key")
	require.NoError(t, err)
	assert.False(t, ok, "results with plain errors should not be cached")
}

func TestManager_Prune(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	m := openTestCache(t)

	for _, p := range []string{"a.jsx", "b.jsx", "c.jsx"} {
		require.NoError(t, m.Put(ctx, p, "key", nil))
	}

	removed, err := m.Prune(ctx, []string{"b.jsx", "d.jsx"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)

	_, ok, err := m.Get(ctx, "b.jsx", "key")
	require.NoError(t, err)
	assert.True(t, ok)

	paths, err := m.Paths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jsx"}, paths)
}

func TestOpen_PersistsAcrossConnections(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	path := filepath.Join(t.TempDir(), "nested", cache.DefaultLocation)

	m, err := cache.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, m.Put(ctx, "a.jsx", "key", sampleResults()))
	require.NoError(t, m.Close())

	reopened, err := cache.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	results, ok, err := reopened.Get(ctx, "a.jsx", "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, results, 2)
}

func TestOpen_Error(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := cache.Open(t.Context(), filepath.Join(blocker, cache.DefaultLocation))
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.ErrOpen)
	assert.Contains(t, err.Error(), "creating cache directory")
}

func TestOpen_SchemaTooNew(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	path := filepath.Join(t.TempDir(), cache.DefaultLocation)
	m, err := cache.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, "UPDATE schema_version SET version = 99")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = cache.Open(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.ErrOpen)
	assert.ErrorIs(t, err, cache.ErrSchemaTooNew)
	assert.Contains(t, err.Error(), "found version 99")
}
