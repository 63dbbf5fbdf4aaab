package backup

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/recordvault/internal/common"
	"github.com/dmitrijs2005/recordvault/internal/dbx"
	"github.com/dmitrijs2005/recordvault/internal/logging"
	"github.com/dmitrijs2005/recordvault/internal/netx"
)

// MaxSnapshotSize caps a downloaded snapshot.
const MaxSnapshotSize = 512 << 20

// Importer appends the rows of a snapshot to a store keyed with the same
// secret. Row ids are reassigned by the target store. Workers bounds the
// ciphertext check; zero means parallelx.DefaultLimit.
type Importer struct {
	Target    Source
	Presigner Presigner
	HTTP      *http.Client
	Logger    logging.Logger
	Workers   int
}

// Import reads a snapshot from r and inserts its rows in one transaction.
// Every encrypted field must open with the target's key before anything is
// written. It returns the number of rows inserted.
func (im *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	if err := im.Target.Ready(); err != nil {
		return 0, err
	}

	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrInvalidSnapshot, err)
	}
	if err := snap.validate(); err != nil {
		return 0, err
	}
	if subtle.ConstantTimeCompare(snap.KeyVerifier, im.Target.Cipher().Verifier()) != 1 {
		return 0, fmt.Errorf("snapshot of store %s: %w", snap.StoreID, common.ErrWrongSecret)
	}
	if err := checkCiphertext(ctx, im.Target.Cipher(), &snap, im.Workers); err != nil {
		return 0, err
	}

	repos := im.Target.Repositories()
	err := dbx.WithTx(ctx, im.Target.DB(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := repos.Records(tx).InsertMany(ctx, snap.Records); err != nil {
			return err
		}
		return repos.Patients(tx).InsertMany(ctx, snap.PatientRecords)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrTransaction, err)
	}

	n := len(snap.Records) + len(snap.PatientRecords)
	if im.Logger != nil {
		im.Logger.Info(ctx, "snapshot imported", "source_store_id", snap.StoreID, "rows", n)
	}
	return n, nil
}

// ImportObject downloads the snapshot stored under key and imports it.
func (im *Importer) ImportObject(ctx context.Context, key string) (int, error) {
	if im.Presigner == nil {
		return 0, fmt.Errorf("object storage is not configured")
	}
	url, err := im.Presigner.PresignGet(ctx, key)
	if err != nil {
		return 0, err
	}
	body, err := netx.GetPresigned(ctx, im.HTTP, url, MaxSnapshotSize)
	if err != nil {
		return 0, fmt.Errorf("download snapshot: %w", err)
	}
	return im.Import(ctx, bytes.NewReader(body))
}
