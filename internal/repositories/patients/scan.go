package patients

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/models"
)

const selectAllQuery = `SELECT id, name, diagnosis, body, created_at FROM patient_records ORDER BY created_at, id`

func insertAll(ctx context.Context, db dbx.DBTX, query string, items []models.EncryptedPatientRecord) error {
	for n, item := range items {
		_, err := db.ExecContext(ctx, query, item.Name, item.Diagnosis, dbx.NullBytes(item.Body), item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert patient record %d of %d: %w", n+1, len(items), err)
		}
	}
	return nil
}

func selectAll(ctx context.Context, db dbx.DBTX) ([]models.EncryptedPatientRecord, error) {
	rows, err := db.QueryContext(ctx, selectAllQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to select patient records: %w", err)
	}
	defer rows.Close()

	result := []models.EncryptedPatientRecord{}
	for rows.Next() {
		var item models.EncryptedPatientRecord
		if err := rows.Scan(&item.ID, &item.Name, &item.Diagnosis, &item.Body, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan patient record: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patient records: %w", err)
	}
	return result, nil
}

func count(ctx context.Context, db dbx.DBTX) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patient_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count patient records: %w", err)
	}
	return n, nil
}
