// Package dto defines the wire types for the sync and queue endpoints.
package dto

import (
	"encoding/json"
	"time"

	validation "github.com/jellydator/validation"

	syncDomain "github.com/allisson/agrosync/internal/sync/domain"
)

// maxBatchSize caps one queue request; larger outboxes are submitted in
// several requests, each transactional on its own.
const maxBatchSize = 500

// MutationRequest mirrors one queued client mutation on the wire. Field-level
// checks happen per item inside the queue processor so that one malformed
// mutation cannot reject its batch siblings.
type MutationRequest struct {
	MutationID string          `json:"mutation_id"`
	UserID     string          `json:"user_id"`
	Entity     string          `json:"entity"`
	Op         string          `json:"op"`
	Data       json.RawMessage `json:"data"`
	ClientTS   *time.Time      `json:"client_ts,omitempty"`
}

// QueueRequest is the request body for the queue endpoint.
type QueueRequest struct {
	Mutations []MutationRequest `json:"mutations"`
}

// Validate checks the request envelope.
func (r *QueueRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Mutations,
			validation.Required.Error("mutations is required"),
			validation.Length(1, maxBatchSize).Error("mutations must contain between 1 and 500 items"),
		),
	)
}

// ToDomain converts the wire mutations into their domain form.
func (r *QueueRequest) ToDomain() []syncDomain.ClientMutation {
	mutations := make([]syncDomain.ClientMutation, 0, len(r.Mutations))
	for _, m := range r.Mutations {
		mutations = append(mutations, syncDomain.ClientMutation{
			MutationID: m.MutationID,
			UserID:     m.UserID,
			Entity:     syncDomain.EntityKind(m.Entity),
			Op:         syncDomain.Op(m.Op),
			Data:       m.Data,
			ClientTS:   m.ClientTS,
		})
	}
	return mutations
}
