package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/agrosync/internal/errors"
)

func TestOp_Valid(t *testing.T) {
	assert.True(t, OpInsert.Valid())
	assert.True(t, OpUpdate.Valid())
	assert.True(t, OpDelete.Valid())
	assert.False(t, Op("upsert").Valid())
	assert.False(t, Op("").Valid())
}

func TestClientMutation_Validate(t *testing.T) {
	valid := ClientMutation{
		MutationID: "m1",
		UserID:     "user-1",
		Entity:     EntityAlert,
		Op:         OpInsert,
		Data:       json.RawMessage(`{}`),
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("MissingMutationID", func(t *testing.T) {
		mutation := valid
		mutation.MutationID = ""
		err := mutation.Validate()
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("BlankUserID", func(t *testing.T) {
		mutation := valid
		mutation.UserID = "   "
		err := mutation.Validate()
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("MissingOp", func(t *testing.T) {
		mutation := valid
		mutation.Op = ""
		err := mutation.Validate()
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("UnknownEntityPassesBoundaryValidation", func(t *testing.T) {
		mutation := valid
		mutation.Entity = "warehouse"
		assert.NoError(t, mutation.Validate())
	})
}
