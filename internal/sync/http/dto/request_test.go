package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncDomain "github.com/allisson/agrosync/internal/sync/domain"
)

func TestQueueRequest_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := QueueRequest{
			Mutations: []MutationRequest{{MutationID: "m1", UserID: "user-1", Entity: "alert", Op: "insert"}},
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("Empty", func(t *testing.T) {
		req := QueueRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("TooLarge", func(t *testing.T) {
		mutations := make([]MutationRequest, maxBatchSize+1)
		req := QueueRequest{Mutations: mutations}
		assert.Error(t, req.Validate())
	})
}

func TestQueueRequest_ToDomain(t *testing.T) {
	clientTS := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	req := QueueRequest{
		Mutations: []MutationRequest{{
			MutationID: "m1",
			UserID:     "user-1",
			Entity:     "ticket",
			Op:         "update",
			Data:       json.RawMessage(`{"id":"t1"}`),
			ClientTS:   &clientTS,
		}},
	}

	mutations := req.ToDomain()
	require.Len(t, mutations, 1)
	assert.Equal(t, "m1", mutations[0].MutationID)
	assert.Equal(t, syncDomain.EntityTicket, mutations[0].Entity)
	assert.Equal(t, syncDomain.OpUpdate, mutations[0].Op)
	assert.JSONEq(t, `{"id":"t1"}`, string(mutations[0].Data))
	assert.Equal(t, &clientTS, mutations[0].ClientTS)
}
