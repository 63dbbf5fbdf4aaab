package records

import (
	"context"

	"github.com/dmitrijs2005/recordvault/internal/models"
)

// Repository describes the operations on the records collection.
type Repository interface {
	// InsertMany inserts the rows in order. Ids are assigned by the store and
	// the ID field of the input is ignored.
	InsertMany(ctx context.Context, items []models.EncryptedRecord) error

	// GetByPage returns all rows whose page equals page, ordered by id.
	GetByPage(ctx context.Context, page int) ([]models.EncryptedRecord, error)

	// CountByPage returns the number of rows whose page equals page.
	CountByPage(ctx context.Context, page int) (int, error)

	// GetAll returns every row ordered by id.
	GetAll(ctx context.Context) ([]models.EncryptedRecord, error)
}
