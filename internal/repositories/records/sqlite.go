package records

import (
	"context"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) InsertMany(ctx context.Context, items []models.EncryptedRecord) error {
	query := `INSERT INTO records (name, title, body, page, created_date, reservation_date)
		VALUES (?, ?, ?, ?, ?, ?)`
	return insertAll(ctx, r.db, query, items)
}

func (r *SQLiteRepository) GetByPage(ctx context.Context, page int) ([]models.EncryptedRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM records WHERE page = ? ORDER BY id`
	return selectMany(ctx, r.db, query, page)
}

func (r *SQLiteRepository) CountByPage(ctx context.Context, page int) (int, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM records WHERE page = ?`, page)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.EncryptedRecord, error) {
	return selectMany(ctx, r.db, `SELECT `+selectColumns+` FROM records ORDER BY id`)
}
