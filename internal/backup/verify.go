package backup

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recordvault/internal/common"
	"github.com/dmitrijs2005/recordvault/internal/cryptox"
	"github.com/dmitrijs2005/recordvault/internal/models"
	"github.com/dmitrijs2005/recordvault/internal/parallelx"
)

// checkCiphertext opens every encrypted field of the snapshot with c and
// fails on the first one that does not authenticate.
func checkCiphertext(ctx context.Context, c *cryptox.FieldCipher, snap *Snapshot, workers int) error {
	_, err := parallelx.Map(ctx, snap.Records, workers, func(_ context.Context, _ int, r models.EncryptedRecord) (struct{}, error) {
		return struct{}{}, openFields(c, "record", r.ID,
			field{"name", r.Name}, field{"title", r.Title}, field{"body", r.Body})
	})
	if err == nil {
		_, err = parallelx.Map(ctx, snap.PatientRecords, workers, func(_ context.Context, _ int, p models.EncryptedPatientRecord) (struct{}, error) {
			return struct{}{}, openFields(c, "patient record", p.ID,
				field{"name", p.Name}, field{"diagnosis", p.Diagnosis}, field{"body", p.Body})
		})
	}
	if errors.Is(err, common.ErrDecryption) {
		return fmt.Errorf("%w: %w", common.ErrInvalidSnapshot, err)
	}
	return err
}

type field struct {
	name  string
	value []byte
}

func openFields(c *cryptox.FieldCipher, kind string, id int64, fields ...field) error {
	for _, f := range fields {
		if _, err := c.DecryptOptional(f.value); err != nil {
			return fmt.Errorf("%s %d %s: %w", kind, id, f.name, err)
		}
	}
	return nil
}
