package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fintrack/internal/logging"
	"fintrack/internal/mykafka"
)

func CreateCookie(name string, value string, path string, expTime time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}

	return cookie
}

// expiredCookie clears a cookie with the same attributes it was set with.
func expiredCookie(name string) *http.Cookie {
	return CreateCookie(name, "", "/", time.Now().Add(-time.Hour))
}

func respond(c echo.Context, code int, data interface{}, message string) error {
	return c.JSON(code, echo.Map{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// publish sends a domain event without failing the request; broker problems
// are logged and swallowed.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
