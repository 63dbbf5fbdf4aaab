// Package common defines sentinel errors shared by the store, services and
// command-line layers of RecordVault. Callers should use errors.Is to match
// these values; they are usually wrapped with additional context.
package common

import "errors"

var (
	// Store lifecycle errors.
	ErrInitialization = errors.New("store initialization failed")
	ErrStoreClosed    = errors.New("store is closed")
	ErrWrongSecret    = errors.New("secret does not match this store")

	// Write/read path errors.
	ErrTransaction = errors.New("transaction failed")
	ErrDecryption  = errors.New("decryption failed")

	// Snapshot import errors.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// Argument validation errors.
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = errors.New("page size must be >= 1")
)
