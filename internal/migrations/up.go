package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/pressly/goose/v3"
)

// goose keeps its base FS, dialect and logger in package globals.
var gooseMu sync.Mutex

// Up applies every pending migration for engine. Running it against an
// already migrated database applies nothing.
func Up(ctx context.Context, db *sql.DB, engine dbx.Engine, logger goose.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(Migrations)
	defer goose.SetBaseFS(nil)

	if logger != nil {
		goose.SetLogger(logger)
	} else {
		goose.SetLogger(goose.NopLogger())
	}

	if err := goose.SetDialect(engine.GooseDialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := SQLiteDir
	if engine == dbx.EnginePostgres {
		dir = PostgresDir
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Version returns the schema version recorded by goose.
func Version(ctx context.Context, db *sql.DB, engine dbx.Engine) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(engine.GooseDialect()); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
