// Package models defines the plaintext records handed to callers and the
// encrypted rows persisted by the repositories.
package models

import (
	"strings"
	"time"
)

// Record is a decrypted generic record. Empty Name, Title and Body mean the
// field is absent.
type Record struct {
	ID              int64
	Name            string
	Title           string
	Body            string
	Page            int
	CreatedDate     *time.Time
	ReservationDate *time.Time
}

// Label is the display name of the record: its name, or its title if it has
// no name.
func (r Record) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Title
}

// Matches reports whether the name or title contains term, ignoring case.
// An empty term matches everything.
func (r Record) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.Name), t) ||
		strings.Contains(strings.ToLower(r.Title), t)
}

// EncryptedRecord is a row of the records collection. Name, Title and Body
// hold AES-GCM ciphertext; nil means NULL. Page and the dates are plaintext.
type EncryptedRecord struct {
	ID              int64   `json:"id"`
	Name            []byte  `json:"name,omitempty"`
	Title           []byte  `json:"title,omitempty"`
	Body            []byte  `json:"body,omitempty"`
	Page            int     `json:"page"`
	CreatedDate     *string `json:"created_date,omitempty"`
	ReservationDate *string `json:"reservation_date,omitempty"`
}
