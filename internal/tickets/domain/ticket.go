// Package domain defines the ticket entity and its status state machine.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/agrosync/internal/errors"
)

// Status represents the lifecycle state of a ticket.
//
// Transitions move forward through a fixed ordering. The only client-driven
// edge is issued|scanned -> canceled; the counter scan flow drives
// issued -> scanned -> completed and the expiry sweep drives * -> expired.
type Status string

const (
	StatusIssued    Status = "issued"
	StatusScanned   Status = "scanned"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusExpired   Status = "expired"
)

// Valid reports whether the status is a member of the closed set.
func (s Status) Valid() bool {
	switch s {
	case StatusIssued, StatusScanned, StatusCompleted, StatusCanceled, StatusExpired:
		return true
	}
	return false
}

// Terminal reports whether no further client-driven transition is permitted.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCanceled, StatusExpired:
		return true
	}
	return false
}

// ClientCancelable reports whether a client may still cancel a ticket in this state.
func (s Status) ClientCancelable() bool {
	return s == StatusIssued || s == StatusScanned
}

// Ticket represents a user's pickup ticket for produce at a market. Tickets
// can be created offline on the client (insert is idempotent by id); after
// creation the client may only request cancellation.
type Ticket struct {
	ID        uuid.UUID
	UserID    string
	CropKey   string
	Quantity  float64
	Unit      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrTicketNotFound indicates the requested ticket does not exist for the user.
var ErrTicketNotFound = errors.Wrap(errors.ErrNotFound, "ticket not found")
