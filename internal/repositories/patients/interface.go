// Package patients persists the patient_records collection. Name, diagnosis
// and body are ciphertext; created_at is indexed plaintext and defines the
// scan order.
package patients

import (
	"context"

	"github.com/dmitrijs2005/recordvault/internal/models"
)

// Repository describes the operations on the patient_records collection.
type Repository interface {
	// InsertMany inserts the rows in order; ids are assigned by the store.
	InsertMany(ctx context.Context, items []models.EncryptedPatientRecord) error

	// GetAllByCreatedAt returns every row ordered by created_at, ties broken by id.
	GetAllByCreatedAt(ctx context.Context) ([]models.EncryptedPatientRecord, error)

	// Count returns the number of rows.
	Count(ctx context.Context) (int, error)
}
