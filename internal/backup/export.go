package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"

	"github.com/dmitrijs2005/recordvault/internal/logging"
	"github.com/dmitrijs2005/recordvault/internal/netx"
	"github.com/google/uuid"
)

const contentType = "application/json"

// Exporter uploads snapshots through presigned PUT URLs.
type Exporter struct {
	Source    Source
	Presigner Presigner
	// Prefix is prepended to every object key.
	Prefix string
	HTTP   *http.Client
	Logger logging.Logger
}

// ObjectKey returns <prefix>/<store id>/<uuid>.json.
func ObjectKey(prefix, storeID string) string {
	return path.Join(prefix, storeID, uuid.NewString()+".json")
}

// Export writes a snapshot of both collections and returns its object key.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	snap, err := Collect(ctx, e.Source)
	if err != nil {
		return "", fmt.Errorf("collect snapshot: %w", err)
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := ObjectKey(e.Prefix, snap.StoreID)
	url, err := e.Presigner.PresignPut(ctx, key)
	if err != nil {
		return "", err
	}
	if err := netx.PutPresigned(ctx, e.HTTP, url, body, contentType); err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	if e.Logger != nil {
		e.Logger.Info(ctx, "snapshot exported", "key", key,
			"records", len(snap.Records), "patient_records", len(snap.PatientRecords), "bytes", len(body))
	}
	return key, nil
}
