package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/recordvault/internal/common"
	"github.com/dmitrijs2005/recordvault/internal/dbtest"
	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileDSN(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "nested", "vault.db")
}

func TestOpen_InMemory_Ready(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{DSN: dbtest.MemoryDSN(t)})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ready())
	assert.Equal(t, dbx.EngineSQLite, s.Engine())
	_, err = uuid.Parse(s.ID())
	require.NoError(t, err, "store id is a uuid")
	require.NotNil(t, s.Cipher())

	v, err := migrations.Version(ctx, s.DB(), dbx.EngineSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestOpen_ReopenKeepsIdentityAndData(t *testing.T) {
	ctx := context.Background()
	dsn := fileDSN(t)

	s1, err := Open(ctx, Options{DSN: dsn, Secret: []byte("token")})
	require.NoError(t, err)

	ct, err := s1.Cipher().EncryptField("kept")
	require.NoError(t, err)
	_, err = s1.DB().ExecContext(ctx, `INSERT INTO records (name, page) VALUES (?, ?)`, ct, 1)
	require.NoError(t, err)
	id := s1.ID()
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, Options{DSN: dsn, Secret: []byte("token")})
	require.NoError(t, err)
	defer s2.Close()

	assert.Equal(t, id, s2.ID())
	rows, err := s2.Repositories().Records(s2.DB()).GetByPage(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	name, err := s2.Cipher().DecryptField(rows[0].Name)
	require.NoError(t, err)
	assert.Equal(t, "kept", name)
}

func TestOpen_WrongSecret(t *testing.T) {
	ctx := context.Background()
	dsn := fileDSN(t)

	s, err := Open(ctx, Options{DSN: dsn, Secret: []byte("right")})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{DSN: dsn, Secret: []byte("wrong")})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrWrongSecret)
	assert.ErrorIs(t, err, common.ErrInitialization)
}

func TestOpen_EmptySecretIsDefault(t *testing.T) {
	ctx := context.Background()
	dsn := fileDSN(t)

	s, err := Open(ctx, Options{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, Options{DSN: dsn, Secret: []byte(common.DefaultSecret)})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, Options{})
	assert.ErrorIs(t, err, common.ErrInitialization)

	_, err = Open(ctx, Options{Engine: "oracle", DSN: "x"})
	assert.ErrorIs(t, err, common.ErrInitialization)
}

func TestOpen_SQLOpenError(t *testing.T) {
	orig := sqlOpen
	defer func() { sqlOpen = orig }()
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		return nil, errors.New("no driver")
	}

	_, err := Open(context.Background(), Options{DSN: dbtest.MemoryDSN(t)})
	require.ErrorIs(t, err, common.ErrInitialization)
	assert.Contains(t, err.Error(), "no driver")
}

func TestOpen_PingError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	orig := sqlOpen
	defer func() { sqlOpen = orig }()
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		return db, nil
	}

	_, err = Open(context.Background(), Options{Engine: dbx.EnginePostgres, DSN: "postgres://localhost/vault"})
	require.ErrorIs(t, err, common.ErrInitialization)
	assert.Contains(t, err.Error(), "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClose_Idempotent(t *testing.T) {
	s, err := Open(context.Background(), Options{DSN: dbtest.MemoryDSN(t)})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Ready(), common.ErrStoreClosed)

	var nilStore *Store
	assert.ErrorIs(t, nilStore.Ready(), common.ErrStoreClosed)
}
