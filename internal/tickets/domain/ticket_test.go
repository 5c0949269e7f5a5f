package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	for _, status := range []Status{StatusIssued, StatusScanned, StatusCompleted, StatusCanceled, StatusExpired} {
		assert.True(t, status.Valid(), "status %s must be valid", status)
	}

	assert.False(t, Status("fulfilled").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusIssued.Terminal())
	assert.False(t, StatusScanned.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCanceled.Terminal())
	assert.True(t, StatusExpired.Terminal())
}

func TestStatus_ClientCancelable(t *testing.T) {
	assert.True(t, StatusIssued.ClientCancelable())
	assert.True(t, StatusScanned.ClientCancelable())
	assert.False(t, StatusCompleted.ClientCancelable())
	assert.False(t, StatusCanceled.ClientCancelable())
	assert.False(t, StatusExpired.ClientCancelable())
}
