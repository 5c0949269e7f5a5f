package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/agrosync/internal/config"
	syncHTTP "github.com/allisson/agrosync/internal/sync/http"
	syncMocks "github.com/allisson/agrosync/internal/sync/http/mocks"
	"github.com/allisson/agrosync/internal/sync/usecase"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:              "127.0.0.1",
		ServerPort:              0,
		RateLimitEnabled:        false,
		RateLimitRequestsPerSec: 5,
		RateLimitBurst:          10,
	}
}

func newTestServer(cfg *config.Config, syncUseCase *syncMocks.SyncUseCase, queueUseCase *syncMocks.QueueUseCase) *Server {
	gin.SetMode(gin.TestMode)

	logger := testLogger()
	syncHandler := syncHTTP.NewSyncHandler(syncUseCase, logger)
	queueHandler := syncHTTP.NewQueueHandler(queueUseCase, logger)

	return NewServer(cfg, logger, syncHandler, queueHandler, nil)
}

func TestServer_Routes(t *testing.T) {
	t.Run("Health", func(t *testing.T) {
		server := newTestServer(testConfig(), &syncMocks.SyncUseCase{}, &syncMocks.QueueUseCase{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "healthy")
	})

	t.Run("SyncRoute", func(t *testing.T) {
		syncUseCase := &syncMocks.SyncUseCase{}
		syncUseCase.On("Sync", mock.Anything, mock.Anything).Return(&usecase.SyncOutput{
			ServerTime: time.Now().UTC(),
			NextSince:  time.Now().UTC(),
		}, nil)
		server := newTestServer(testConfig(), syncUseCase, &syncMocks.QueueUseCase{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/sync?user_id=user-1", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		server := newTestServer(testConfig(), &syncMocks.SyncUseCase{}, &syncMocks.QueueUseCase{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/nothing", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware(1, 2, testLogger()))
	router.POST("/v1/queue", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Burst of 2 allows the first two requests, the third is rejected.
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/queue", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}
