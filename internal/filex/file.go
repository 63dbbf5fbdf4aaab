// Package filex contains filesystem helpers for the on-disk store.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (and parents) if needed and returns its absolute path.
// Relative paths are resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// SQLiteFilePath extracts the database file path from a SQLite DSN such as
// "file:data/vault.db?_pragma=busy_timeout(5000)". In-memory DSNs yield "".
func SQLiteFilePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	query := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i+1:]
	}
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return ""
	}
	return path
}

// EnsureSQLiteDir creates the directory that will hold the database file
// named by dsn. It is a no-op for in-memory databases.
func EnsureSQLiteDir(dsn string) error {
	path := SQLiteFilePath(dsn)
	if path == "" {
		return nil
	}
	_, err := EnsureDir(filepath.Dir(path))
	return err
}
