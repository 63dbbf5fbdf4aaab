// Package repomanager vends engine-specific repository implementations and
// runs the schema migrations for the selected engine.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/migrations"
	"github.com/dmitrijs2005/recordvault/internal/repositories/metadata"
	"github.com/dmitrijs2005/recordvault/internal/repositories/patients"
	"github.com/dmitrijs2005/recordvault/internal/repositories/records"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Records(db dbx.DBTX) records.Repository
	Patients(db dbx.DBTX) patients.Repository
	Metadata(db dbx.DBTX) metadata.Repository
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// ForEngine returns the manager for engine. logger receives goose output
// and may be nil.
func ForEngine(engine dbx.Engine, logger goose.Logger) (RepositoryManager, error) {
	switch engine {
	case dbx.EngineSQLite:
		return NewSQLiteRepositoryManager(logger), nil
	case dbx.EnginePostgres:
		return NewPostgresRepositoryManager(logger), nil
	default:
		return nil, fmt.Errorf("unsupported engine %q", engine)
	}
}
