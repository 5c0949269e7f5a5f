// Package http provides HTTP handlers for the delta sync and mutation queue endpoints.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/agrosync/internal/httputil"
	"github.com/allisson/agrosync/internal/sync/http/dto"
	syncUseCase "github.com/allisson/agrosync/internal/sync/usecase"
)

// SyncHandler handles HTTP requests for the delta sync endpoint.
type SyncHandler struct {
	syncUseCase syncUseCase.SyncUseCase
	logger      *slog.Logger
}

// NewSyncHandler creates a new sync handler with required dependencies.
func NewSyncHandler(useCase syncUseCase.SyncUseCase, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		syncUseCase: useCase,
		logger:      logger,
	}
}

// SyncHandler returns every row changed after the client's cursor.
// GET /v1/sync?user_id=U&since=T&areas=A,B&crops=X,Y
// Returns 200 OK with the delta and the next cursor to persist client-side.
func (h *SyncHandler) SyncHandler(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("user_id is required"), h.logger)
		return
	}

	since, err := httputil.ParseTimeQuery(c, "since")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := syncUseCase.SyncInput{
		UserID:   userID,
		Since:    since,
		Areas:    httputil.ParseCSVQuery(c, "areas"),
		CropKeys: httputil.ParseCSVQuery(c, "crops"),
	}

	output, err := h.syncUseCase.Sync(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSyncOutputToResponse(output))
}
