package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("agrosync")
	require.NoError(t, err)
	require.NotNil(t, provider)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
}

func TestProvider_HandlerServesMetrics(t *testing.T) {
	provider, err := NewProvider("agrosync")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	metrics, err := NewBusinessMetrics(provider.MeterProvider(), "agrosync")
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordOperation(ctx, "sync", "sync", "success")
	metrics.RecordDuration(ctx, "queue", "process_queue", 30*time.Millisecond, "success")
	metrics.RecordMutationResult(ctx, "alert", "applied")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "agrosync_operations_total")
	assert.Contains(t, body, "agrosync_mutations_total")
}

func TestProvider_Shutdown(t *testing.T) {
	provider, err := NewProvider("agrosync")
	require.NoError(t, err)

	assert.NoError(t, provider.Shutdown(context.Background()))
}
