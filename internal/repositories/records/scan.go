package records

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/models"
)

const selectColumns = `id, name, title, body, page, created_date, reservation_date`

func insertAll(ctx context.Context, db dbx.DBTX, query string, items []models.EncryptedRecord) error {
	for n, item := range items {
		_, err := db.ExecContext(ctx, query,
			dbx.NullBytes(item.Name), dbx.NullBytes(item.Title), dbx.NullBytes(item.Body),
			item.Page, dbx.NullString(item.CreatedDate), dbx.NullString(item.ReservationDate))
		if err != nil {
			return fmt.Errorf("failed to insert record %d of %d: %w", n+1, len(items), err)
		}
	}
	return nil
}

func selectMany(ctx context.Context, db dbx.DBTX, query string, args ...any) ([]models.EncryptedRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	result := []models.EncryptedRecord{}
	for rows.Next() {
		var item models.EncryptedRecord
		if err := rows.Scan(&item.ID, &item.Name, &item.Title, &item.Body,
			&item.Page, &item.CreatedDate, &item.ReservationDate); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return result, nil
}

func count(ctx context.Context, db dbx.DBTX, query string, args ...any) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}
