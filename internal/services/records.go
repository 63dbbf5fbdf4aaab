package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recordvault/internal/common"
	"github.com/dmitrijs2005/recordvault/internal/cryptox"
	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/logging"
	"github.com/dmitrijs2005/recordvault/internal/models"
	"github.com/dmitrijs2005/recordvault/internal/parallelx"
	"github.com/dmitrijs2005/recordvault/internal/timex"
)

// RecordService stores and reads the generic records collection.
type RecordService interface {
	// InsertMany encrypts items and stores them in one transaction.
	InsertMany(ctx context.Context, items []models.Record) error
	// GetPage returns the records of page, ordered by id, whose name or
	// title contains searchTerm. An empty term keeps every record.
	GetPage(ctx context.Context, page int, searchTerm string) ([]models.Record, error)
	// CountPage returns the number of stored records on page.
	CountPage(ctx context.Context, page int) (int, error)
}

type recordService struct {
	backend Backend
	workers int
	logger  logging.Logger
}

// NewRecordService returns a RecordService. workers bounds the number of
// concurrent field encrypt/decrypt calls; 0 means GOMAXPROCS.
func NewRecordService(backend Backend, workers int, logger logging.Logger) RecordService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &recordService{backend: backend, workers: workers, logger: logger.With("collection", "records")}
}

func (s *recordService) InsertMany(ctx context.Context, items []models.Record) error {
	if err := s.backend.Ready(); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	c := s.backend.Cipher()
	rows, err := parallelx.Map(ctx, items, s.workers, func(_ context.Context, _ int, r models.Record) (models.EncryptedRecord, error) {
		return encryptRecord(c, r)
	})
	if err != nil {
		s.logger.Error(ctx, "encrypt records", "error", err)
		return fmt.Errorf("encrypt records: %w", err)
	}

	repos := s.backend.Repositories()
	err = dbx.WithTx(ctx, s.backend.DB(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		return repos.Records(tx).InsertMany(ctx, rows)
	})
	if err != nil {
		s.logger.Error(ctx, "insert records", "count", len(rows), "error", err)
		return fmt.Errorf("%w: %w", common.ErrTransaction, err)
	}

	s.logger.Debug(ctx, "records inserted", "count", len(rows))
	return nil
}

func (s *recordService) GetPage(ctx context.Context, page int, searchTerm string) ([]models.Record, error) {
	if err := s.backend.Ready(); err != nil {
		return nil, err
	}

	rows, err := s.backend.Repositories().Records(s.backend.DB()).GetByPage(ctx, page)
	if err != nil {
		s.logger.Error(ctx, "get page", "page", page, "error", err)
		return nil, err
	}

	c := s.backend.Cipher()
	items, err := parallelx.Map(ctx, rows, s.workers, func(_ context.Context, _ int, row models.EncryptedRecord) (models.Record, error) {
		return decryptRecord(c, row)
	})
	if err != nil {
		s.logger.Error(ctx, "decrypt page", "page", page, "error", err)
		return nil, err
	}

	return models.Filter(items, func(r models.Record) bool { return r.Matches(searchTerm) }), nil
}

func (s *recordService) CountPage(ctx context.Context, page int) (int, error) {
	if err := s.backend.Ready(); err != nil {
		return 0, err
	}
	return s.backend.Repositories().Records(s.backend.DB()).CountByPage(ctx, page)
}

func encryptRecord(c *cryptox.FieldCipher, r models.Record) (models.EncryptedRecord, error) {
	var (
		out = models.EncryptedRecord{Page: r.Page}
		err error
	)
	if out.Name, err = c.EncryptOptional(r.Name); err != nil {
		return out, err
	}
	if out.Title, err = c.EncryptOptional(r.Title); err != nil {
		return out, err
	}
	if out.Body, err = c.EncryptOptional(r.Body); err != nil {
		return out, err
	}
	out.CreatedDate = formatOptional(r.CreatedDate)
	out.ReservationDate = formatOptional(r.ReservationDate)
	return out, nil
}

func decryptRecord(c *cryptox.FieldCipher, row models.EncryptedRecord) (models.Record, error) {
	var (
		out = models.Record{ID: row.ID, Page: row.Page}
		err error
	)
	if out.Name, err = c.DecryptOptional(row.Name); err != nil {
		return out, fmt.Errorf("record %d name: %w", row.ID, err)
	}
	if out.Title, err = c.DecryptOptional(row.Title); err != nil {
		return out, fmt.Errorf("record %d title: %w", row.ID, err)
	}
	if out.Body, err = c.DecryptOptional(row.Body); err != nil {
		return out, fmt.Errorf("record %d body: %w", row.ID, err)
	}
	if out.CreatedDate, err = parseOptional(row.CreatedDate); err != nil {
		return out, fmt.Errorf("record %d created_date: %w", row.ID, err)
	}
	if out.ReservationDate, err = parseOptional(row.ReservationDate); err != nil {
		return out, fmt.Errorf("record %d reservation_date: %w", row.ID, err)
	}
	return out, nil
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timex.FormatISO(*t)
	return &s
}

func parseOptional(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := timex.ParseISO(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
