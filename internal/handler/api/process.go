package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"FinVoice/internal/domain/models"
	domservice "FinVoice/internal/domain/service"
	"FinVoice/internal/usecase"
	xhttp "FinVoice/pkg/http"
	xlogger "FinVoice/pkg/logger"
)

// AssistantHandler exposes the orchestrator boundary: POST /process,
// GET /health, and the websocket session endpoint.
type AssistantHandler struct {
	logger    *xlogger.Logger
	pipeline  *usecase.Pipeline
	retrieval domservice.RetrievalService
}

func NewAssistantHandler(logger *xlogger.Logger, pipeline *usecase.Pipeline, retrieval domservice.RetrievalService) *AssistantHandler {
	return &AssistantHandler{logger: logger, pipeline: pipeline, retrieval: retrieval}
}

func (h *AssistantHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/process", h.Process)
	e.GET("/health", h.Health)
	e.GET("/ws", h.Session)
}

// Process answers one query. The response shape is always
// {narrative, audio_base64}; audio_base64 may be null.
func (h *AssistantHandler) Process(c echo.Context) error {
	req := &models.ProcessRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	resp, err := h.run(ctx, req.Query, nil)
	if err != nil {
		// Catch-all: an internal fault still yields the documented shape,
		// narrative plus best-effort audio.
		h.logger.Error("pipeline fault", xlogger.Error(err))
		return c.JSON(errorStatus(err), h.pipeline.Fallback(ctx))
	}
	return c.JSON(http.StatusOK, resp)
}

// errorStatus maps an AppError to its HTTP status, defaulting to 500.
func errorStatus(err error) int {
	var appErr *xhttp.AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Health reflects readiness of the critical downstream collaborator.
func (h *AssistantHandler) Health(c echo.Context) error {
	status := "ok"
	if err := h.retrieval.Health(c.Request().Context()); err != nil {
		status = "degraded: retrieval agent unreachable"
	}
	return c.JSON(http.StatusOK, map[string]string{"status": status})
}

// run executes the pipeline with panic containment. A contained panic
// surfaces as an internal AppError so the boundary can pick its status.
func (h *AssistantHandler) run(ctx context.Context, query string, obs usecase.Observer) (resp models.FinalResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = xhttp.InternalErrorf("pipeline panic: %v", r)
		}
	}()
	return h.pipeline.Process(ctx, query, obs), nil
}
