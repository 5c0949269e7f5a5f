package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/agrosync/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("NilReturnsNil", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("WrapsAsInvalidInput", func(t *testing.T) {
		err := WrapValidationError(assert.AnError)
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate("   "))
	// Empty values are the Required rule's job, jellydator skips empty strings here
	assert.NoError(t, NotBlank.Validate(""))
}

func TestOneOf(t *testing.T) {
	rule := OneOf{Allowed: []string{"insert", "update", "delete"}}

	assert.NoError(t, rule.Validate("insert"))
	assert.NoError(t, rule.Validate("delete"))
	assert.Error(t, rule.Validate("upsert"))
	assert.Error(t, rule.Validate(42))
}
