package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fintrack/internal/service/dashboard"
	"fintrack/internal/service/token"
)

type DashboardHandler struct {
	Engine *dashboard.Engine
}

func (h *DashboardHandler) Get(c echo.Context) error {
	snap, err := h.Engine.Compute(token.UserID(c), time.Now())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, snap, "dashboard data fetched successfully")
}
