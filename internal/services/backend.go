// Package services implements the encrypting write path and the decrypting
// read path over the repositories of an opened store.
package services

import (
	"database/sql"

	"github.com/dmitrijs2005/recordvault/internal/cryptox"
	"github.com/dmitrijs2005/recordvault/internal/repositories/repomanager"
)

// Backend is the part of *store.Store the services depend on.
type Backend interface {
	Ready() error
	DB() *sql.DB
	Repositories() repomanager.RepositoryManager
	Cipher() *cryptox.FieldCipher
}
