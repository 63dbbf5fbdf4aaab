// Package records persists the generic records collection.
//
// Rows carry AES-GCM ciphertext in name, title and body and plaintext in
// page and the date columns. The page column is indexed; GetByPage is an
// exact-match lookup on that index and returns rows in insertion (id) order.
//
// Both implementations work over a dbx.DBTX, so the same repository can be
// bound to a *sql.DB for reads or to a *sql.Tx for an atomic batch insert:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return records.NewSQLiteRepository(tx).InsertMany(ctx, rows)
//	})
package records
