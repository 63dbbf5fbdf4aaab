package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recordvault/internal/common"
	"github.com/dmitrijs2005/recordvault/internal/cryptox"
	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/logging"
	"github.com/dmitrijs2005/recordvault/internal/models"
	"github.com/dmitrijs2005/recordvault/internal/parallelx"
	"github.com/dmitrijs2005/recordvault/internal/timex"
)

// PatientService stores and pages the patient_records collection.
type PatientService interface {
	// InsertMany encrypts items and stores them in one transaction.
	InsertMany(ctx context.Context, items []models.PatientRecord) error
	// GetPatientPage returns one page of the patients, ordered by creation
	// time, whose name or diagnosis contains searchTerm.
	GetPatientPage(ctx context.Context, searchTerm string, page, pageSize int) ([]models.PatientRecord, error)
	// Count returns the number of patients matching searchTerm.
	Count(ctx context.Context, searchTerm string) (int, error)
}

type patientService struct {
	backend Backend
	workers int
	logger  logging.Logger
}

// NewPatientService returns a PatientService; workers and logger behave as
// in NewRecordService.
func NewPatientService(backend Backend, workers int, logger logging.Logger) PatientService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &patientService{backend: backend, workers: workers, logger: logger.With("collection", "patient_records")}
}

func (s *patientService) InsertMany(ctx context.Context, items []models.PatientRecord) error {
	if err := s.backend.Ready(); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	c := s.backend.Cipher()
	rows, err := parallelx.Map(ctx, items, s.workers, func(_ context.Context, _ int, p models.PatientRecord) (models.EncryptedPatientRecord, error) {
		return encryptPatient(c, p)
	})
	if err != nil {
		s.logger.Error(ctx, "encrypt patients", "error", err)
		return fmt.Errorf("encrypt patients: %w", err)
	}

	repos := s.backend.Repositories()
	err = dbx.WithTx(ctx, s.backend.DB(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		return repos.Patients(tx).InsertMany(ctx, rows)
	})
	if err != nil {
		s.logger.Error(ctx, "insert patients", "count", len(rows), "error", err)
		return fmt.Errorf("%w: %w", common.ErrTransaction, err)
	}

	s.logger.Debug(ctx, "patients inserted", "count", len(rows))
	return nil
}

func (s *patientService) GetPatientPage(ctx context.Context, searchTerm string, page, pageSize int) ([]models.PatientRecord, error) {
	if pageSize <= 0 {
		return nil, common.ErrInvalidPageSize
	}
	if page < 1 {
		return nil, common.ErrInvalidPage
	}

	matched, err := s.matching(ctx, searchTerm)
	if err != nil {
		return nil, err
	}
	return models.Slice(matched, page, pageSize), nil
}

func (s *patientService) Count(ctx context.Context, searchTerm string) (int, error) {
	if searchTerm == "" {
		if err := s.backend.Ready(); err != nil {
			return 0, err
		}
		return s.backend.Repositories().Patients(s.backend.DB()).Count(ctx)
	}

	matched, err := s.matching(ctx, searchTerm)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// matching decrypts the whole collection in index order and keeps the
// patients that match searchTerm.
func (s *patientService) matching(ctx context.Context, searchTerm string) ([]models.PatientRecord, error) {
	if err := s.backend.Ready(); err != nil {
		return nil, err
	}

	rows, err := s.backend.Repositories().Patients(s.backend.DB()).GetAllByCreatedAt(ctx)
	if err != nil {
		s.logger.Error(ctx, "get patients", "error", err)
		return nil, err
	}

	c := s.backend.Cipher()
	items, err := parallelx.Map(ctx, rows, s.workers, func(_ context.Context, _ int, row models.EncryptedPatientRecord) (models.PatientRecord, error) {
		return decryptPatient(c, row)
	})
	if err != nil {
		s.logger.Error(ctx, "decrypt patients", "error", err)
		return nil, err
	}

	return models.Filter(items, func(p models.PatientRecord) bool { return p.Matches(searchTerm) }), nil
}

func encryptPatient(c *cryptox.FieldCipher, p models.PatientRecord) (models.EncryptedPatientRecord, error) {
	var (
		out = models.EncryptedPatientRecord{CreatedAt: timex.FormatISO(p.CreatedAt)}
		err error
	)
	if out.Name, err = c.EncryptField(p.Name); err != nil {
		return out, err
	}
	if out.Diagnosis, err = c.EncryptField(p.Diagnosis); err != nil {
		return out, err
	}
	if out.Body, err = c.EncryptOptional(p.Body); err != nil {
		return out, err
	}
	return out, nil
}

func decryptPatient(c *cryptox.FieldCipher, row models.EncryptedPatientRecord) (models.PatientRecord, error) {
	var (
		out = models.PatientRecord{ID: row.ID}
		err error
	)
	if out.Name, err = c.DecryptField(row.Name); err != nil {
		return out, fmt.Errorf("patient %d name: %w", row.ID, err)
	}
	if out.Diagnosis, err = c.DecryptField(row.Diagnosis); err != nil {
		return out, fmt.Errorf("patient %d diagnosis: %w", row.ID, err)
	}
	if out.Body, err = c.DecryptOptional(row.Body); err != nil {
		return out, fmt.Errorf("patient %d body: %w", row.ID, err)
	}
	if out.CreatedAt, err = timex.ParseISO(row.CreatedAt); err != nil {
		return out, fmt.Errorf("patient %d created_at: %w", row.ID, err)
	}
	return out, nil
}
