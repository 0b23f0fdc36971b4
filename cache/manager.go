// Package cache stores lint results per file in a SQLite database so unchanged files
// are not linted again.
//
// Entries are keyed by file path and validated against a key the caller derives from
// the file contents, the effective configuration and the tool version (see
// hashing.ContentHash). A lookup with a different key is a miss.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsxerrors "github.com/speakeasy-api/jsxlint/errors"
	_ "modernc.org/sqlite"
)

// DefaultLocation is the cache file used when none is configured.
const DefaultLocation = ".jsxlintcache"

const (
	// ErrOpen is returned when the cache database cannot be created, opened or migrated.
	ErrOpen jsxerrors.Error = "failed to open cache"
	// ErrSchemaTooNew is returned for a database written by a newer jsxlint.
	ErrSchemaTooNew jsxerrors.Error = "cache schema is newer than supported"
)

// Manager wraps a sql.DB connection to the results cache.
type Manager struct {
	conn *sql.DB
}

// Open opens or creates the cache database at the given path.
// It creates the parent directory if it does not exist.
func Open(ctx context.Context, dbPath string) (*Manager, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ErrOpen.Wrapf("creating cache directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, ErrOpen.Wrap(err)
	}
	// Files are linted concurrently; a single connection serializes writers.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, ErrOpen.Wrapf("enabling WAL: %w", err)
	}

	return open(ctx, conn)
}

// OpenInMemory opens an in-memory cache, useful for testing.
func OpenInMemory(ctx context.Context) (*Manager, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, ErrOpen.Wrap(err)
	}
	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	return open(ctx, conn)
}

func open(ctx context.Context, conn *sql.DB) (*Manager, error) {
	m := &Manager{conn: conn}
	if err := m.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, ErrOpen.Wrap(err)
	}
	return m, nil
}

// Close closes the database connection.
func (m *Manager) Close() error {
	return m.conn.Close()
}

// Get returns the cached results of path when they were stored under key.
func (m *Manager) Get(ctx context.Context, path, key string) ([]error, bool, error) {
	var storedKey, findings string
	err := m.conn.QueryRowContext(ctx, "SELECT key, findings FROM results WHERE path = ?", path).Scan(&storedKey, &findings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry for %q: %w", path, err)
	}
	if storedKey != key {
		return nil, false, nil
	}

	results, err := decodeResults([]byte(findings))
	if err != nil {
		return nil, false, fmt.Errorf("decoding cache entry for %q: %w", path, err)
	}
	return results, true, nil
}

// Put stores the results of path under key, replacing any previous entry. Results that
// are not validation errors cannot be restored, so such a result set is not cached and
// the previous entry is removed instead.
func (m *Manager) Put(ctx context.Context, path, key string, results []error) error {
	findings, ok, err := encodeResults(results)
	if err != nil {
		return fmt.Errorf("encoding cache entry for %q: %w", path, err)
	}
	if !ok {
		return m.Delete(ctx, path)
	}

	_, err = m.conn.ExecContext(ctx, `
		INSERT INTO results (path, key, findings, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET key = excluded.key, findings = excluded.findings, updated_at = excluded.updated_at
	`, path, key, string(findings), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing cache entry for %q: %w", path, err)
	}
	return nil
}

// Delete removes the entry of path.
func (m *Manager) Delete(ctx context.Context, path string) error {
	if _, err := m.conn.ExecContext(ctx, "DELETE FROM results WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting cache entry for %q: %w", path, err)
	}
	return nil
}

// Paths returns the paths with a cache entry, in path order.
func (m *Manager) Paths(ctx context.Context) ([]string, error) {
	rows, err := m.conn.QueryContext(ctx, "SELECT path FROM results ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("listing cache entries: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// Prune removes the entries of every path not in keep and returns how many were removed.
func (m *Manager) Prune(ctx context.Context, keep []string) (int, error) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		keepSet[p] = struct{}{}
	}

	tx, err := m.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	rows, err := tx.QueryContext(ctx, "SELECT path FROM results")
	if err != nil {
		return 0, fmt.Errorf("listing cache entries: %w", err)
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			_ = rows.Close()
			return 0, err
		}
		if _, ok := keepSet[p]; !ok {
			stale = append(stale, p)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, err
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}

	for _, p := range stale {
		if _, err := tx.ExecContext(ctx, "DELETE FROM results WHERE path = ?", p); err != nil {
			return 0, fmt.Errorf("pruning %q: %w", p, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(stale), nil
}

// CacheStats describes the cache contents.
type CacheStats struct {
	Entries int
}

// Stats returns statistics about the cache.
func (m *Manager) Stats(ctx context.Context) (CacheStats, error) {
	var stats CacheStats
	if err := m.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM results").Scan(&stats.Entries); err != nil {
		return CacheStats{}, fmt.Errorf("counting cache entries: %w", err)
	}
	return stats, nil
}
