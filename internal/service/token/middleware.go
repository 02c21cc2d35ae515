package token

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// RequireAuth validates the access token from the accessToken cookie or the
// Authorization header and stores the user id on the echo context.
func (s *Service) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := ""
		if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
			raw = cookie.Value
		} else if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "access token missing")
		}

		userID, err := s.ValidateAccess(raw)
		if err != nil {
			return err
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c echo.Context) uint {
	if v, ok := c.Get(userIDKey).(uint); ok {
		return v
	}
	return 0
}
