package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fintrack/internal/apperrors"
	"fintrack/internal/handlers"
	"fintrack/internal/service/token"
)

type Deps struct {
	AuthHandler      *handlers.AuthHandler
	IncomeHandler    *handlers.IncomeHandler
	ExpenseHandler   *handlers.ExpenseHandler
	DashboardHandler *handlers.DashboardHandler
	SearchHandler    *handlers.SearchHandler
	AssistantHandler *handlers.AssistantHandler
	Tokens           *token.Service
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", d.AuthHandler.Register)
	users.POST("/login", d.AuthHandler.Login)
	users.POST("/refresh-token", d.AuthHandler.Refresh)
	users.POST("/logout", d.AuthHandler.LogOut, d.Tokens.RequireAuth)

	income := v1.Group("/income", d.Tokens.RequireAuth)
	income.POST("/add", d.IncomeHandler.Add)
	income.GET("/get", d.IncomeHandler.GetAll)
	income.GET("/download-excel", d.IncomeHandler.DownloadExcel)
	income.DELETE("/delete/:id", d.IncomeHandler.Delete)

	expense := v1.Group("/expense", d.Tokens.RequireAuth)
	expense.POST("/add", d.ExpenseHandler.Add)
	expense.GET("/get", d.ExpenseHandler.GetAll)
	expense.GET("/download-excel", d.ExpenseHandler.DownloadExcel)
	expense.DELETE("/delete/:id", d.ExpenseHandler.Delete)

	v1.GET("/dashboard", d.DashboardHandler.Get, d.Tokens.RequireAuth)
	v1.GET("/search", d.SearchHandler.Search, d.Tokens.RequireAuth)

	v1.POST("/ai/ai-assistant", d.AssistantHandler.FinanceAssistant)
}

// ErrorHandler normalizes every failure into the uniform envelope. Typed
// errors from the core map onto their status codes; anything unrecognized is
// a 500 without leaking internals.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	case errors.Is(err, apperrors.ErrValidation):
		code = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrInternal):
		// keep the wrapped store detail out of the response
		code = http.StatusInternalServerError
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"success": false, "message": message})
}
