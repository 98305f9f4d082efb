package model

import "time"

// Account represents a registered detective account.
// PasswordHash is an unsalted deterministic digest of the password;
// equal passwords produce equal hashes across accounts. This is a known
// weakness of the stored record format, kept for compatibility with
// existing data rather than silently migrated.
type Account struct {
	Username     string
	PasswordHash string // hex-encoded SHA3-256 digest
	Progress     int    // highest completed level, never decreases
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
