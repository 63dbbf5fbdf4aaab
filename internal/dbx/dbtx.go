// Package dbx holds the small database abstractions shared by the
// repositories: the DBTX interface satisfied by both *sql.DB and *sql.Tx,
// the WithTx transaction runner, and the Engine type that selects the
// driver and migration dialect.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with the transactional handle and
// commits when fn succeeds. Any error from fn rolls the transaction back, so
// the statements fn issued become visible together or not at all. Panics roll
// back and are rethrown.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return repo(tx).InsertMany(ctx, rows)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit: %w", cerr)
		}
	}()

	err = fn(ctx, tx)
	return err
}

// Engine names a supported storage engine.
type Engine string

const (
	EngineSQLite   Engine = "sqlite"
	EnginePostgres Engine = "postgres"
)

// ParseEngine accepts the engine names used in configuration.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3", "":
		return EngineSQLite, nil
	case "postgres", "postgresql", "pgx":
		return EnginePostgres, nil
	default:
		return "", fmt.Errorf("unknown database engine %q", s)
	}
}

// DriverName is the database/sql driver registered for the engine.
func (e Engine) DriverName() string {
	if e == EnginePostgres {
		return "pgx"
	}
	return "sqlite"
}

// GooseDialect is the goose dialect used to migrate the engine.
func (e Engine) GooseDialect() string {
	if e == EnginePostgres {
		return "pgx"
	}
	return "sqlite3"
}

// NullBytes binds b as NULL when it is nil. Some drivers store a nil []byte
// as an empty blob, which would read back as a zero-length ciphertext.
func NullBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}

// NullString binds a nil pointer as NULL and a non-nil one as its value.
func NullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
