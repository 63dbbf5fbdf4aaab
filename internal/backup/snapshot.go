// Package backup exports and imports ciphertext snapshots of a store.
// Snapshots carry the encrypted columns verbatim, so plaintext never leaves
// the store and a snapshot can only be read back with the same secret.
package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recordvault/internal/common"
	"github.com/dmitrijs2005/recordvault/internal/models"
	"github.com/dmitrijs2005/recordvault/internal/services"
	"github.com/dmitrijs2005/recordvault/internal/timex"
)

// Source is an opened store that can be snapshotted.
type Source interface {
	services.Backend
	ID() string
}

// Snapshot is the JSON document written by Export.
type Snapshot struct {
	StoreID        string                          `json:"store_id"`
	CreatedAt      time.Time                       `json:"created_at"`
	KeyVerifier    []byte                          `json:"key_verifier"`
	Records        []models.EncryptedRecord        `json:"records"`
	PatientRecords []models.EncryptedPatientRecord `json:"patient_records"`
}

// Collect reads both collections as stored.
func Collect(ctx context.Context, src Source) (*Snapshot, error) {
	if err := src.Ready(); err != nil {
		return nil, err
	}

	repos := src.Repositories()
	records, err := repos.Records(src.DB()).GetAll(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := repos.Patients(src.DB()).GetAllByCreatedAt(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		StoreID:        src.ID(),
		CreatedAt:      time.Now().UTC(),
		KeyVerifier:    src.Cipher().Verifier(),
		Records:        records,
		PatientRecords: patients,
	}, nil
}

// validate checks the document shape and rewrites every timestamp in
// timex.ISOLayout, so stored rows keep sorting chronologically.
func (s *Snapshot) validate() error {
	if s.StoreID == "" {
		return fmt.Errorf("%w: no store id", common.ErrInvalidSnapshot)
	}
	if len(s.KeyVerifier) == 0 {
		return fmt.Errorf("%w: no key verifier", common.ErrInvalidSnapshot)
	}
	for i := range s.Records {
		r := &s.Records[i]
		if err := normalizeOptional(r.CreatedDate); err != nil {
			return fmt.Errorf("%w: record %d created_date: %w", common.ErrInvalidSnapshot, r.ID, err)
		}
		if err := normalizeOptional(r.ReservationDate); err != nil {
			return fmt.Errorf("%w: record %d reservation_date: %w", common.ErrInvalidSnapshot, r.ID, err)
		}
	}
	for i := range s.PatientRecords {
		p := &s.PatientRecords[i]
		if p.Name == nil || p.Diagnosis == nil || p.CreatedAt == "" {
			return fmt.Errorf("%w: patient record %d is incomplete", common.ErrInvalidSnapshot, p.ID)
		}
		if err := normalize(&p.CreatedAt); err != nil {
			return fmt.Errorf("%w: patient record %d created_at: %w", common.ErrInvalidSnapshot, p.ID, err)
		}
	}
	return nil
}

func normalize(ts *string) error {
	t, err := timex.ParseISO(*ts)
	if err != nil {
		return err
	}
	*ts = timex.FormatISO(t)
	return nil
}

func normalizeOptional(ts *string) error {
	if ts == nil {
		return nil
	}
	return normalize(ts)
}
