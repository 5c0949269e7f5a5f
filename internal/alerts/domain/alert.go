// Package domain defines the price alert entity owned by a single user.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/agrosync/internal/errors"
)

// Alert represents a user's price alert for a crop. Alerts are created and
// edited offline on the client and reconciled through the mutation queue;
// updated_at is the last-write-wins conflict timestamp.
type Alert struct {
	ID        uuid.UUID
	UserID    string
	CropKey   string
	TargetMin float64
	TargetMax float64
	Unit      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrAlertNotFound indicates the requested alert does not exist for the user.
var ErrAlertNotFound = errors.Wrap(errors.ErrNotFound, "alert not found")
