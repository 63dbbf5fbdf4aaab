package metadata

import (
	"context"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
)

var postgresQueries = queries{
	get: `SELECT value FROM metadata WHERE key = $1`,
	set: `INSERT INTO metadata (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
	del: `DELETE FROM metadata WHERE key = $1`,
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, r.db, postgresQueries, key)
}

func (r *PostgresRepository) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, r.db, postgresQueries, key, value)
}

func (r *PostgresRepository) Delete(ctx context.Context, key string) error {
	return del(ctx, r.db, postgresQueries, key)
}

func (r *PostgresRepository) List(ctx context.Context) (map[string][]byte, error) {
	return list(ctx, r.db)
}
