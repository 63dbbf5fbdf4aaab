package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/recordvault/internal/common"
	"github.com/dmitrijs2005/recordvault/internal/cryptox"
	"github.com/dmitrijs2005/recordvault/internal/dbtest"
	"github.com/dmitrijs2005/recordvault/internal/logging"
	"github.com/dmitrijs2005/recordvault/internal/models"
	"github.com/dmitrijs2005/recordvault/internal/repositories/repomanager"
	"github.com/dmitrijs2005/recordvault/internal/store"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), store.Options{DSN: dbtest.MemoryDSN(t), Logger: logging.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func names(items []models.Record) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.Name)
	}
	return out
}

func TestRecordService_AlphaBetaScenario(t *testing.T) {
	ctx := context.Background()
	svc := NewRecordService(openStore(t), 4, nil)

	require.NoError(t, svc.InsertMany(ctx, []models.Record{
		{Name: "Alpha", Page: 1},
		{Name: "Beta", Page: 1},
		{Name: "Alpha2", Page: 1},
	}))

	all, err := svc.GetPage(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta", "Alpha2"}, names(all))
	assert.Less(t, all[0].ID, all[1].ID)
	assert.Less(t, all[1].ID, all[2].ID)

	alpha, err := svc.GetPage(ctx, 1, "alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Alpha2"}, names(alpha))

	empty, err := svc.GetPage(ctx, 2, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRecordService_RoundTripAllFields(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	svc := NewRecordService(s, 0, logging.Nop())

	created := time.Date(2024, 11, 1, 9, 30, 0, 0, time.UTC)
	reserved := time.Date(2024, 12, 24, 18, 0, 0, 0, time.FixedZone("X", 3*3600))
	in := models.Record{Name: "Room 4", Title: "Suite", Body: "Sea view", Page: 7, CreatedDate: &created, ReservationDate: &reserved}

	require.NoError(t, svc.InsertMany(ctx, []models.Record{in, {Title: "Untitled", Page: 7}}))

	got, err := svc.GetPage(ctx, 7, "")
	require.NoError(t, err)
	require.Len(t, got, 2)

	want := in
	want.ID = got[0].ID
	utcReserved := reserved.UTC()
	want.ReservationDate = &utcReserved
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Untitled", got[1].Label())
	assert.Empty(t, got[1].Name)
	assert.Nil(t, got[1].CreatedDate)

	// absent fields are NULL, present ones are ciphertext
	rows, err := s.Repositories().Records(s.DB()).GetByPage(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, rows[1].Name)
	assert.Nil(t, rows[1].Body)
	assert.NotEqual(t, []byte("Room 4"), rows[0].Name)

	n, err := svc.CountPage(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecordService_SearchIsSubset(t *testing.T) {
	ctx := context.Background()
	svc := NewRecordService(openStore(t), 3, nil)

	var items []models.Record
	for i := 1; i <= 12; i++ {
		items = append(items, models.Record{Name: fmt.Sprintf("Item %d on Page 3", i), Title: fmt.Sprintf("T%d", i%3), Page: 3})
	}
	require.NoError(t, svc.InsertMany(ctx, items))

	all, err := svc.GetPage(ctx, 3, "")
	require.NoError(t, err)
	require.Len(t, all, 12)

	for _, term := range []string{"item 1", "T2", "PAGE", "nothing"} {
		sub, err := svc.GetPage(ctx, 3, term)
		require.NoError(t, err)
		ids := map[int64]bool{}
		for _, r := range all {
			ids[r.ID] = true
		}
		for _, r := range sub {
			assert.True(t, ids[r.ID])
			assert.True(t, r.Matches(term))
		}
	}
}

func TestRecordService_EmptyInsertIsNoop(t *testing.T) {
	svc := NewRecordService(openStore(t), 1, nil)
	require.NoError(t, svc.InsertMany(context.Background(), nil))
}

func TestRecordService_DecryptionFailureFailsFetch(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	svc := NewRecordService(s, 2, nil)

	require.NoError(t, svc.InsertMany(ctx, []models.Record{{Name: "good", Page: 1}}))
	_, err := s.DB().ExecContext(ctx, `INSERT INTO records (name, page) VALUES (?, ?)`, []byte("not ciphertext at all"), 1)
	require.NoError(t, err)

	_, err = svc.GetPage(ctx, 1, "")
	require.ErrorIs(t, err, common.ErrDecryption)
	assert.Contains(t, err.Error(), "record 2")
}

func TestPatientService_PaginationScenario(t *testing.T) {
	ctx := context.Background()
	svc := NewPatientService(openStore(t), 4, nil)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]models.PatientRecord, 25)
	// inserted newest first so index order differs from insertion order
	for i := range items {
		n := 25 - i
		items[i] = models.PatientRecord{
			Name:      fmt.Sprintf("Patient %d", n),
			Diagnosis: fmt.Sprintf("Diagnosis %d", n),
			CreatedAt: base.Add(time.Duration(n) * time.Hour),
		}
	}
	require.NoError(t, svc.InsertMany(ctx, items))

	p2, err := svc.GetPatientPage(ctx, "", 2, 10)
	require.NoError(t, err)
	require.Len(t, p2, 10)
	for i, p := range p2 {
		assert.Equal(t, fmt.Sprintf("Patient %d", 11+i), p.Name)
	}

	p3, err := svc.GetPatientPage(ctx, "", 3, 10)
	require.NoError(t, err)
	require.Len(t, p3, 5)
	assert.Equal(t, "Patient 21", p3[0].Name)
	assert.Equal(t, "Patient 25", p3[4].Name)
	assert.Equal(t, base.Add(25*time.Hour), p3[4].CreatedAt)

	p4, err := svc.GetPatientPage(ctx, "", 4, 10)
	require.NoError(t, err)
	assert.Empty(t, p4)

	all, err := svc.GetPatientPage(ctx, "", 1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, all, 25)

	n, err := svc.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 25, n)
}

func TestPatientService_SearchAndCount(t *testing.T) {
	ctx := context.Background()
	svc := NewPatientService(openStore(t), 2, nil)

	day := func(d int) time.Time { return time.Date(2024, 11, d, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, svc.InsertMany(ctx, []models.PatientRecord{
		{Name: "Ann", Diagnosis: "Flu", CreatedAt: day(1)},
		{Name: "Bob", Diagnosis: "Influenza", CreatedAt: day(2), Body: "notes"},
		{Name: "Flynn", Diagnosis: "Cold", CreatedAt: day(3)},
		{Name: "Dora", Diagnosis: "Sprain", CreatedAt: day(4)},
	}))

	got, err := svc.GetPatientPage(ctx, "FL", 1, 10)
	require.NoError(t, err)
	var gotNames []string
	for _, p := range got {
		gotNames = append(gotNames, p.Name)
	}
	assert.Equal(t, []string{"Ann", "Bob", "Flynn"}, gotNames)
	assert.Equal(t, "notes", got[1].Body)

	second, err := svc.GetPatientPage(ctx, "fl", 2, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Flynn", second[0].Name)

	n, err := svc.Count(ctx, "fl")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPatientService_ArgumentValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewPatientService(openStore(t), 1, nil)

	_, err := svc.GetPatientPage(ctx, "", 1, 0)
	assert.ErrorIs(t, err, common.ErrInvalidPageSize)
	_, err = svc.GetPatientPage(ctx, "", 0, 10)
	assert.ErrorIs(t, err, common.ErrInvalidPage)
	_, err = svc.GetPatientPage(ctx, "", -3, 10)
	assert.ErrorIs(t, err, common.ErrInvalidPage)
}

func TestServices_ClosedStore(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	require.NoError(t, s.Close())

	rs := NewRecordService(s, 1, nil)
	ps := NewPatientService(s, 1, nil)

	assert.ErrorIs(t, rs.InsertMany(ctx, []models.Record{{Name: "x"}}), common.ErrStoreClosed)
	_, err := rs.GetPage(ctx, 1, "")
	assert.ErrorIs(t, err, common.ErrStoreClosed)
	_, err = rs.CountPage(ctx, 1)
	assert.ErrorIs(t, err, common.ErrStoreClosed)
	assert.ErrorIs(t, ps.InsertMany(ctx, []models.PatientRecord{{Name: "x"}}), common.ErrStoreClosed)
	_, err = ps.GetPatientPage(ctx, "", 1, 1)
	assert.ErrorIs(t, err, common.ErrStoreClosed)
	_, err = ps.Count(ctx, "")
	assert.ErrorIs(t, err, common.ErrStoreClosed)
}

// mockBackend serves PostgreSQL repositories over a sqlmock connection.
type mockBackend struct {
	db     *sql.DB
	cipher *cryptox.FieldCipher
}

func (b *mockBackend) Ready() error                 { return nil }
func (b *mockBackend) DB() *sql.DB                  { return b.db }
func (b *mockBackend) Cipher() *cryptox.FieldCipher { return b.cipher }
func (b *mockBackend) Repositories() repomanager.RepositoryManager {
	return repomanager.NewPostgresRepositoryManager(nil)
}

func newMockBackend(t *testing.T) (*mockBackend, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	c, err := cryptox.NewFieldCipherFromSecret([]byte(common.DefaultSecret))
	require.NoError(t, err)
	return &mockBackend{db: db, cipher: c}, mock
}

func TestRecordService_InsertFailureRollsBack(t *testing.T) {
	b, mock := newMockBackend(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO records`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO records`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := NewRecordService(b, 2, nil).InsertMany(context.Background(), []models.Record{
		{Name: "a", Page: 1}, {Name: "b", Page: 1}, {Name: "c", Page: 1},
	})
	require.ErrorIs(t, err, common.ErrTransaction)
	assert.Contains(t, err.Error(), "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientService_CommitFailure(t *testing.T) {
	b, mock := newMockBackend(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO patient_records`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := NewPatientService(b, 1, nil).InsertMany(context.Background(), []models.PatientRecord{
		{Name: "p", Diagnosis: "d", CreatedAt: time.Now()},
	})
	require.ErrorIs(t, err, common.ErrTransaction)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientService_WrongKeyDecryptFails(t *testing.T) {
	b, mock := newMockBackend(t)

	other, err := cryptox.NewFieldCipherFromSecret([]byte("someone else"))
	require.NoError(t, err)
	name, _ := other.EncryptField("n")
	diag, _ := other.EncryptField("d")

	mock.ExpectQuery(`SELECT id, name, diagnosis, body, created_at FROM patient_records`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "diagnosis", "body", "created_at"}).
			AddRow(int64(9), name, diag, nil, "2024-11-01T00:00:00.000Z"))

	_, err = NewPatientService(b, 1, nil).GetPatientPage(context.Background(), "", 1, 10)
	require.ErrorIs(t, err, common.ErrDecryption)
	assert.Contains(t, err.Error(), "patient 9")
}
