package seed

import (
	"context"

	"github.com/dmitrijs2005/recordvault/internal/models"
)

type recordWriter interface {
	InsertMany(ctx context.Context, items []models.Record) error
	CountPage(ctx context.Context, page int) (int, error)
}

// RecordTarget seeds the records collection page by page.
type RecordTarget struct {
	Records recordWriter
}

func (t RecordTarget) IsEmpty(ctx context.Context, page int) (bool, error) {
	n, err := t.Records.CountPage(ctx, page)
	return n == 0, err
}

func (t RecordTarget) InsertMany(ctx context.Context, items []models.Record) error {
	return t.Records.InsertMany(ctx, items)
}

type patientWriter interface {
	InsertMany(ctx context.Context, items []models.PatientRecord) error
	Count(ctx context.Context, searchTerm string) (int, error)
}

// PatientTarget seeds the patient_records collection. The unit is ignored:
// the whole collection must be empty.
type PatientTarget struct {
	Patients patientWriter
}

func (t PatientTarget) IsEmpty(ctx context.Context, _ int) (bool, error) {
	n, err := t.Patients.Count(ctx, "")
	return n == 0, err
}

func (t PatientTarget) InsertMany(ctx context.Context, items []models.PatientRecord) error {
	return t.Patients.InsertMany(ctx, items)
}
