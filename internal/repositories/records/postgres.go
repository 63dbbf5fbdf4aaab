package records

import (
	"context"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) InsertMany(ctx context.Context, items []models.EncryptedRecord) error {
	query := `INSERT INTO records (name, title, body, page, created_date, reservation_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	return insertAll(ctx, r.db, query, items)
}

func (r *PostgresRepository) GetByPage(ctx context.Context, page int) ([]models.EncryptedRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM records WHERE page = $1 ORDER BY id`
	return selectMany(ctx, r.db, query, page)
}

func (r *PostgresRepository) CountByPage(ctx context.Context, page int) (int, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM records WHERE page = $1`, page)
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.EncryptedRecord, error) {
	return selectMany(ctx, r.db, `SELECT `+selectColumns+` FROM records ORDER BY id`)
}
