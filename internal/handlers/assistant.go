package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fintrack/internal/apperrors"
	"fintrack/internal/service/assistant"
)

type AssistantHandler struct {
	AI *assistant.Service
}

// FinanceAssistant forwards the user's question plus optional context to the
// hosted model and returns the generated commentary verbatim.
func (h *AssistantHandler) FinanceAssistant(c echo.Context) error {
	var req struct {
		Query   string                 `json:"query"`
		Context map[string]interface{} `json:"context"`
	}
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", apperrors.ErrValidation)
	}
	if req.Query == "" {
		return fmt.Errorf("%w: query is required", apperrors.ErrValidation)
	}

	if h.AI == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "finance assistant is not configured")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	text, err := h.AI.FinanceInsights(ctx, req.Query, req.Context)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate finance insights")
	}

	return respond(c, http.StatusOK, text, "insights generated successfully")
}
