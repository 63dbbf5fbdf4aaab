// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/migrations"
	_ "modernc.org/sqlite"
)

// MemoryDSN returns a shared-cache in-memory DSN unique to the test.
func MemoryDSN(t testing.TB) string {
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	return "file:" + name + "?mode=memory&cache=shared"
}

// OpenSQLite returns an in-memory SQLite database with the full schema
// applied. It is closed when the test ends.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open(dbx.EngineSQLite.DriverName(), MemoryDSN(t))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(context.Background(), db, dbx.EngineSQLite, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
