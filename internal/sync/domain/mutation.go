// Package domain defines the client mutation model for the offline queue.
//
// A mutation is created on the client while offline and submitted one or more
// times; retries reuse the same client-generated mutation id so the server can
// consume each logical write exactly once. Payloads form a tagged union keyed
// by entity: each entity has its own payload shape, decoded and validated
// before any store write happens.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/agrosync/internal/validation"
)

// EntityKind tags which entity a mutation targets.
type EntityKind string

const (
	EntityAlert  EntityKind = "alert"
	EntityTicket EntityKind = "ticket"
)

// Op is the operation requested by the client.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Valid reports whether the op is a member of the closed set.
func (o Op) Valid() bool {
	switch o {
	case OpInsert, OpUpdate, OpDelete:
		return true
	}
	return false
}

// ClientMutation is a single queued write submitted by a client.
//
// Entity and Op are deliberately not validated here: an unknown entity or op
// is a per-item domain error recorded in the ledger, not a request-level
// failure that would abort the whole batch.
type ClientMutation struct {
	MutationID string          `json:"mutation_id"`
	UserID     string          `json:"user_id"`
	Entity     EntityKind      `json:"entity"`
	Op         Op              `json:"op"`
	Data       json.RawMessage `json:"data"`
	ClientTS   *time.Time      `json:"client_ts,omitempty"`
}

// Validate checks the fields required to identify and record the mutation.
func (m *ClientMutation) Validate() error {
	err := validation.ValidateStruct(m,
		validation.Field(&m.MutationID,
			validation.Required.Error("mutation_id is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("mutation_id must be between 1 and 255 characters"),
		),
		validation.Field(&m.UserID,
			validation.Required.Error("user_id is required"),
			appValidation.NotBlank,
		),
		validation.Field(&m.Op,
			validation.Required.Error("op is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// AlertPayload is the mutation payload for the alert entity.
// UpdatedAt carries the client-side write timestamp used for
// last-write-wins conflict resolution against the stored row.
type AlertPayload struct {
	ID        uuid.UUID  `json:"id"`
	CropKey   string     `json:"crop_key"`
	TargetMin float64    `json:"target_min"`
	TargetMax float64    `json:"target_max"`
	Unit      string     `json:"unit"`
	Active    bool       `json:"active"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TicketPayload is the mutation payload for the ticket entity.
// Status is only honored on update, where the sole client-requestable
// transition is into "canceled".
type TicketPayload struct {
	ID        uuid.UUID  `json:"id"`
	CropKey   string     `json:"crop_key"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Status    string     `json:"status,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ResultStatus is the per-item outcome reported back to the client.
type ResultStatus string

const (
	ResultApplied ResultStatus = "applied"
	ResultError   ResultStatus = "error"
	ResultSkipped ResultStatus = "skipped"
)

// MutationResult is the per-item entry in the queue response. The client uses
// it to reconcile its local outbox: applied and skipped items can be dropped,
// error items surface the rejection message.
type MutationResult struct {
	MutationID string       `json:"mutation_id"`
	Status     ResultStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
}
