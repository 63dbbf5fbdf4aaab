package patients

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/recordvault/internal/dbtest"
	"github.com/dmitrijs2005/recordvault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllByCreatedAt_OrdersByIndexThenID(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.InsertMany(ctx, []models.EncryptedPatientRecord{
		{Name: []byte("p3"), Diagnosis: []byte("d3"), CreatedAt: "2024-11-03T00:00:00.000Z"},
		{Name: []byte("p1"), Diagnosis: []byte("d1"), CreatedAt: "2024-11-01T00:00:00.000Z"},
		{Name: []byte("p2a"), Diagnosis: []byte("d2"), CreatedAt: "2024-11-02T00:00:00.000Z", Body: []byte("b")},
		{Name: []byte("p2b"), Diagnosis: []byte("d2"), CreatedAt: "2024-11-02T00:00:00.000Z"},
	}))

	all, err := r.GetAllByCreatedAt(ctx)
	require.NoError(t, err)

	var names []string
	for _, p := range all {
		names = append(names, string(p.Name))
	}
	assert.Equal(t, []string{"p1", "p2a", "p2b", "p3"}, names)
	assert.Equal(t, []byte("b"), all[1].Body)
	assert.Nil(t, all[2].Body)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestCount_Empty(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	n, err := NewSQLiteRepository(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestInsertMany_RequiresCiphertext(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	r := NewSQLiteRepository(db)

	err := r.InsertMany(context.Background(), []models.EncryptedPatientRecord{
		{Name: nil, Diagnosis: []byte("d"), CreatedAt: "2024-11-01T00:00:00.000Z"},
	})
	require.Error(t, err, "name is NOT NULL")
}

func TestInsertMany_Many(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	items := make([]models.EncryptedPatientRecord, 25)
	for i := range items {
		items[i] = models.EncryptedPatientRecord{
			Name:      []byte(fmt.Sprintf("n%d", i)),
			Diagnosis: []byte("d"),
			CreatedAt: fmt.Sprintf("2024-11-%02dT00:00:00.000Z", i+1),
		}
	}
	require.NoError(t, r.InsertMany(ctx, items))

	all, err := r.GetAllByCreatedAt(ctx)
	require.NoError(t, err)
	require.Len(t, all, 25)
	for i, p := range all {
		assert.Equal(t, int64(i+1), p.ID)
	}
}
