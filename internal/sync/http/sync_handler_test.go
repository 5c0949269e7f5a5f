package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	alertsDomain "github.com/allisson/agrosync/internal/alerts/domain"
	apperrors "github.com/allisson/agrosync/internal/errors"
	refdataDomain "github.com/allisson/agrosync/internal/refdata/domain"
	"github.com/allisson/agrosync/internal/sync/http/dto"
	"github.com/allisson/agrosync/internal/sync/http/mocks"
	"github.com/allisson/agrosync/internal/sync/usecase"
	ticketsDomain "github.com/allisson/agrosync/internal/tickets/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestSyncHandler_SyncHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		mockUseCase := &mocks.SyncUseCase{}
		handler := NewSyncHandler(mockUseCase, testLogger())

		serverTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		since := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)

		output := &usecase.SyncOutput{
			ServerTime: serverTime,
			NextSince:  serverTime,
			Markets: []*refdataDomain.Market{{
				ID:        uuid.Must(uuid.NewV7()),
				Name:      "Pasar Minggu",
				UpdatedAt: serverTime,
			}},
			CropPrices: []*refdataDomain.CropPrice{},
			Alerts: []*alertsDomain.Alert{{
				ID:        uuid.Must(uuid.NewV7()),
				UserID:    "user-1",
				CropKey:   "rice",
				UpdatedAt: serverTime,
			}},
			Tickets: []*ticketsDomain.Ticket{},
		}

		mockUseCase.On("Sync", mock.Anything, usecase.SyncInput{
			UserID:   "user-1",
			Since:    &since,
			Areas:    []string{"3201", "3202"},
			CropKeys: []string{"rice"},
		}).Return(output, nil)

		c, w := createTestContext(http.MethodGet,
			"/v1/sync?user_id=user-1&since=2025-06-01T11:00:00Z&areas=3201,3202&crops=rice", nil)

		handler.SyncHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.SyncResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.NextSince.Equal(serverTime))
		assert.Len(t, response.Reference.Markets, 1)
		assert.Len(t, response.User.Alerts, 1)
		assert.NotNil(t, response.User.Tickets)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		mockUseCase := &mocks.SyncUseCase{}
		handler := NewSyncHandler(mockUseCase, testLogger())

		c, w := createTestContext(http.MethodGet, "/v1/sync", nil)

		handler.SyncHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
	})

	t.Run("InvalidSince", func(t *testing.T) {
		mockUseCase := &mocks.SyncUseCase{}
		handler := NewSyncHandler(mockUseCase, testLogger())

		c, w := createTestContext(http.MethodGet, "/v1/sync?user_id=user-1&since=yesterday", nil)

		handler.SyncHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UseCaseError", func(t *testing.T) {
		mockUseCase := &mocks.SyncUseCase{}
		handler := NewSyncHandler(mockUseCase, testLogger())

		mockUseCase.On("Sync", mock.Anything, mock.Anything).
			Return(nil, apperrors.New("connection lost"))

		c, w := createTestContext(http.MethodGet, "/v1/sync?user_id=user-1", nil)

		handler.SyncHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
