package patients

import (
	"context"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) InsertMany(ctx context.Context, items []models.EncryptedPatientRecord) error {
	return insertAll(ctx, r.db,
		`INSERT INTO patient_records (name, diagnosis, body, created_at) VALUES ($1, $2, $3, $4)`, items)
}

func (r *PostgresRepository) GetAllByCreatedAt(ctx context.Context) ([]models.EncryptedPatientRecord, error) {
	return selectAll(ctx, r.db)
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db)
}
