package models

import (
	"strings"
	"time"
)

// PatientRecord is a decrypted patient record.
type PatientRecord struct {
	ID        int64
	Name      string
	Diagnosis string
	Body      string
	CreatedAt time.Time
}

// Matches reports whether the name or diagnosis contains term, ignoring case.
// An empty term matches everything.
func (p PatientRecord) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), t) ||
		strings.Contains(strings.ToLower(p.Diagnosis), t)
}

// EncryptedPatientRecord is a row of the patient_records collection.
// CreatedAt is plaintext in timex.ISOLayout so the index orders it.
type EncryptedPatientRecord struct {
	ID        int64  `json:"id"`
	Name      []byte `json:"name"`
	Diagnosis []byte `json:"diagnosis"`
	Body      []byte `json:"body,omitempty"`
	CreatedAt string `json:"created_at"`
}
