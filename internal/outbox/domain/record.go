// Package domain defines the mutation ledger entities for the outbox pattern.
package domain

import (
	"time"
)

// RecordStatus represents the terminal outcome of a processed mutation.
type RecordStatus string

const (
	RecordStatusApplied RecordStatus = "applied"
	RecordStatusError   RecordStatus = "error"
)

// MutationRecord is the ledger entry for a single client mutation, keyed by
// the client-generated mutation id. At most one record ever exists per id:
// presence of the key is how duplicate deliveries are detected and
// short-circuited. Records are append-once and never revisited.
type MutationRecord struct {
	MutationID string
	UserID     string
	Entity     string
	Op         string
	Status     RecordStatus
	Message    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
