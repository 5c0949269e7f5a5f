package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/agrosync/internal/httputil"
	"github.com/allisson/agrosync/internal/sync/http/dto"
	syncUseCase "github.com/allisson/agrosync/internal/sync/usecase"
)

// QueueHandler handles HTTP requests for the mutation queue endpoint.
type QueueHandler struct {
	queueUseCase syncUseCase.QueueUseCase
	logger       *slog.Logger
}

// NewQueueHandler creates a new queue handler with required dependencies.
func NewQueueHandler(useCase syncUseCase.QueueUseCase, logger *slog.Logger) *QueueHandler {
	return &QueueHandler{
		queueUseCase: useCase,
		logger:       logger,
	}
}

// ProcessHandler applies a batch of queued client mutations.
// POST /v1/queue with {mutations: [...]}.
// Returns 200 OK with one result per mutation; per-item domain failures are
// reported in the results, not as an HTTP error.
func (h *QueueHandler) ProcessHandler(c *gin.Context) {
	var req dto.QueueRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	results, err := h.queueUseCase.ProcessQueue(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapResultsToQueueResponse(results))
}
