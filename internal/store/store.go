// Package store opens the encrypted record store: it connects the selected
// engine, applies the schema, derives the session key and checks it against
// the verifier recorded when the store was first opened.
package store

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/recordvault/internal/common"
	"github.com/dmitrijs2005/recordvault/internal/cryptox"
	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/filex"
	"github.com/dmitrijs2005/recordvault/internal/logging"
	"github.com/dmitrijs2005/recordvault/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// Options configure Open.
type Options struct {
	Engine dbx.Engine
	DSN    string
	// Secret is the application secret. Empty means common.DefaultSecret.
	Secret []byte
	Logger logging.Logger
}

// Store is an opened store session. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	engine dbx.Engine
	repos  repomanager.RepositoryManager
	cipher *cryptox.FieldCipher
	id     string
	logger logging.Logger
	closed atomic.Bool
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open initializes a store session. Every failure is wrapped with
// common.ErrInitialization; a secret that does not match the store also
// matches common.ErrWrongSecret.
func Open(ctx context.Context, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	engine := opts.Engine
	if engine == "" {
		engine = dbx.EngineSQLite
	}
	if opts.DSN == "" {
		return nil, fmt.Errorf("%w: empty database dsn", common.ErrInitialization)
	}

	repos, err := repomanager.ForEngine(engine, logging.GooseAdapter{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInitialization, err)
	}

	if engine == dbx.EngineSQLite {
		if err := filex.EnsureSQLiteDir(opts.DSN); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrInitialization, err)
		}
	}

	db, err := sqlOpen(engine.DriverName(), opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", common.ErrInitialization, engine, err)
	}
	if engine == dbx.EngineSQLite {
		db.SetMaxOpenConns(1)
	}

	s, err := open(ctx, db, engine, repos, opts.Secret, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info(ctx, "store opened", "engine", string(engine), "store_id", s.id)
	return s, nil
}

func open(ctx context.Context, db *sql.DB, engine dbx.Engine, repos repomanager.RepositoryManager, secret []byte, logger logging.Logger) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: ping: %w", common.ErrInitialization, err)
	}

	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInitialization, err)
	}

	if len(secret) == 0 {
		secret = []byte(common.DefaultSecret)
	}
	cipher, err := cryptox.NewFieldCipherFromSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInitialization, err)
	}

	var id string
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		md := repos.Metadata(tx)

		verifier, err := md.Get(ctx, common.MetadataKeyVerifier)
		if err != nil {
			return err
		}
		if verifier == nil {
			if err := md.Set(ctx, common.MetadataKeyVerifier, cipher.Verifier()); err != nil {
				return err
			}
		} else if subtle.ConstantTimeCompare(verifier, cipher.Verifier()) != 1 {
			return common.ErrWrongSecret
		}

		raw, err := md.Get(ctx, common.MetadataStoreID)
		if err != nil {
			return err
		}
		if raw == nil {
			raw = []byte(uuid.NewString())
			if err := md.Set(ctx, common.MetadataStoreID, raw); err != nil {
				return err
			}
		}
		id = string(raw)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInitialization, err)
	}

	return &Store{
		db:     db,
		engine: engine,
		repos:  repos,
		cipher: cipher,
		id:     id,
		logger: logger.With("store_id", id),
	}, nil
}

// Ready returns common.ErrStoreClosed once Close has been called.
func (s *Store) Ready() error {
	if s == nil || s.closed.Load() {
		return common.ErrStoreClosed
	}
	return nil
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Engine() dbx.Engine {
	return s.engine
}

func (s *Store) Repositories() repomanager.RepositoryManager {
	return s.repos
}

// Cipher returns the field cipher holding this session's key.
func (s *Store) Cipher() *cryptox.FieldCipher {
	return s.cipher
}

// ID is the store identity generated at first open.
func (s *Store) ID() string {
	return s.id
}

// Close releases the database handle. Calling it again is a no-op.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.logger.Debug(context.Background(), "store closed")
	return s.db.Close()
}
