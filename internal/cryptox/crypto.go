// Package cryptox implements key derivation and the field cipher used to keep
// sensitive record fields encrypted at rest.
//
// # Security notes
//
// Every field is sealed with AES-256-GCM under one key and one fixed 12-byte
// nonce. The output is deterministic: equal plaintexts produce equal
// ciphertexts, which leaks equality across fields and records, and GCM nonce
// reuse weakens both confidentiality and integrity. Stored data depends on
// this exact layout, so changing the nonce scheme requires versioning the
// stored ciphertext first.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"

	"github.com/dmitrijs2005/recordvault/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 work factor.
	Iterations = 100_000
	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32
	// NonceSize is the GCM nonce length in bytes.
	NonceSize = 12

	nonceSeed = "static_iv_value"
)

// fixedNonce is the first 12 bytes of nonceSeed, shared by every field.
var fixedNonce = []byte(nonceSeed)[:NonceSize]

// DeriveKey turns the application secret into an AES-256 key with
// PBKDF2-HMAC-SHA-256. The secret doubles as the salt.
func DeriveKey(secret []byte) []byte {
	return deriveKey(secret, secret, Iterations)
}

func deriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, KeySize, sha256.New)
}

// MakeVerifier returns a digest of the key that can be persisted to detect
// a store being opened with a different secret.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// FieldCipher encrypts and decrypts individual text fields. It is safe for
// concurrent use; the underlying AEAD keeps no per-call state.
type FieldCipher struct {
	aead     cipher.AEAD
	verifier []byte
}

// NewFieldCipher builds a cipher over an already derived key.
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &FieldCipher{aead: aead, verifier: MakeVerifier(key)}, nil
}

// NewFieldCipherFromSecret derives the key from secret and builds a cipher.
// The intermediate key bytes are wiped before returning.
func NewFieldCipherFromSecret(secret []byte) (*FieldCipher, error) {
	key := DeriveKey(secret)
	defer Wipe(key)
	return NewFieldCipher(key)
}

// Verifier returns the digest of the key this cipher was built with.
func (c *FieldCipher) Verifier() []byte {
	out := make([]byte, len(c.verifier))
	copy(out, c.verifier)
	return out
}

// EncryptField seals plaintext. The result is ciphertext followed by the
// 16-byte GCM tag, the same layout WebCrypto produces.
func (c *FieldCipher) EncryptField(plaintext string) ([]byte, error) {
	if c == nil || c.aead == nil {
		return nil, fmt.Errorf("field cipher is not initialized")
	}
	return c.aead.Seal(nil, fixedNonce, []byte(plaintext), nil), nil
}

// DecryptField opens a value produced by EncryptField.
func (c *FieldCipher) DecryptField(ciphertext []byte) (string, error) {
	if c == nil || c.aead == nil {
		return "", fmt.Errorf("%w: field cipher is not initialized", common.ErrDecryption)
	}
	plaintext, err := c.aead.Open(nil, fixedNonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrDecryption, err)
	}
	return string(plaintext), nil
}

// EncryptOptional is EncryptField for nullable columns: an empty plaintext
// maps to nil so the column is stored as NULL.
func (c *FieldCipher) EncryptOptional(plaintext string) ([]byte, error) {
	if plaintext == "" {
		return nil, nil
	}
	return c.EncryptField(plaintext)
}

// DecryptOptional reverses EncryptOptional.
func (c *FieldCipher) DecryptOptional(ciphertext []byte) (string, error) {
	if ciphertext == nil {
		return "", nil
	}
	return c.DecryptField(ciphertext)
}

// Wipe overwrites b with zeros. Nil is a no-op.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
