package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("WrapsErrorWithContext", func(t *testing.T) {
		err := Wrap(ErrNotFound, "alert not found")
		assert.Error(t, err)
		assert.Equal(t, "alert not found: not found", err.Error())
		assert.True(t, Is(err, ErrNotFound))
	})

	t.Run("NilErrorReturnsNil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("PreservesChainAcrossMultipleWraps", func(t *testing.T) {
		err := Wrap(Wrap(ErrInvalidInput, "bad payload"), "queue item rejected")
		assert.True(t, Is(err, ErrInvalidInput))
		assert.Equal(t, "queue item rejected: bad payload: invalid input", err.Error())
	})
}

func TestWrapf(t *testing.T) {
	t.Run("FormatsContext", func(t *testing.T) {
		err := Wrapf(ErrConflict, "mutation %q already recorded", "m1")
		assert.True(t, Is(err, ErrConflict))
		assert.Equal(t, `mutation "m1" already recorded: conflict`, err.Error())
	})

	t.Run("NilErrorReturnsNil", func(t *testing.T) {
		assert.NoError(t, Wrapf(nil, "context %d", 1))
	})
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", ErrUnauthorized)
	assert.True(t, Is(err, ErrUnauthorized))
	assert.False(t, Is(err, ErrNotFound))
}

func TestNew(t *testing.T) {
	err := New("boom")
	assert.EqualError(t, err, "boom")
}
