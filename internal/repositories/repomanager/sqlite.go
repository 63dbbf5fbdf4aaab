package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/repositories/metadata"
	"github.com/dmitrijs2005/recordvault/internal/repositories/patients"
	"github.com/dmitrijs2005/recordvault/internal/repositories/records"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct {
	logger goose.Logger
}

func NewSQLiteRepositoryManager(logger goose.Logger) *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{logger: logger}
}

func (m *SQLiteRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return records.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Patients(db dbx.DBTX) patients.Repository {
	return patients.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, dbx.EngineSQLite, m.logger)
}
