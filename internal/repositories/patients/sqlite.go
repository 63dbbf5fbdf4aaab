package patients

import (
	"context"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) InsertMany(ctx context.Context, items []models.EncryptedPatientRecord) error {
	return insertAll(ctx, r.db,
		`INSERT INTO patient_records (name, diagnosis, body, created_at) VALUES (?, ?, ?, ?)`, items)
}

func (r *SQLiteRepository) GetAllByCreatedAt(ctx context.Context) ([]models.EncryptedPatientRecord, error) {
	return selectAll(ctx, r.db)
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db)
}
