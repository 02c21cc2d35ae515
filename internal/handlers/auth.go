package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fintrack/internal/apperrors"
	"fintrack/internal/hash"
	"fintrack/internal/models"
	"fintrack/internal/mykafka"
	"fintrack/internal/service/token"
	"fintrack/internal/store"
)

type AuthHandler struct {
	Users     *store.UserStore
	Tokens    *token.Service
	Producer  *mykafka.Producer
	UploadDir string
}

// Register creates a user from a multipart form: username, email, password
// and a required avatar file.
func (h *AuthHandler) Register(c echo.Context) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: username, email and password are required", apperrors.ErrValidation)
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return fmt.Errorf("%w: avatar is required", apperrors.ErrValidation)
	}

	avatarPath, err := h.saveAvatar(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "avatar upload failed, please try again")
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Avatar:       avatarPath,
	}
	if err := h.Users.Create(&user); err != nil {
		return err
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return respond(c, http.StatusCreated, user, "user registered successfully")
}

// Login authenticates by username or email. A missing user and a wrong
// password answer differently on purpose; tightening that would change
// observable behavior.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", apperrors.ErrValidation)
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}
	if login == "" || req.Password == "" {
		return fmt.Errorf("%w: username or email and password are required", apperrors.ErrValidation)
	}

	user, err := h.Users.FindByLogin(login)
	if err != nil {
		return err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return apperrors.ErrInvalidCredentials
	}

	pair, err := h.Tokens.Issue(user.ID)
	if err != nil {
		return err
	}
	h.setSessionCookies(c, pair)

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return respond(c, http.StatusOK, echo.Map{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "user logged in successfully")
}

// LogOut clears the stored refresh token and expires both cookies, so any
// outstanding refresh token dies immediately.
func (h *AuthHandler) LogOut(c echo.Context) error {
	userID := token.UserID(c)
	if err := h.Tokens.Revoke(userID); err != nil {
		return err
	}

	c.SetCookie(expiredCookie("accessToken"))
	c.SetCookie(expiredCookie("refreshToken"))

	return respond(c, http.StatusOK, nil, "user logged out successfully")
}

// Refresh rotates the session: the presented refresh token, taken from the
// cookie or the body, is exchanged for a new pair exactly once.
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := ""
	if cookie, err := c.Cookie("refreshToken"); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.Bind(&req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		return fmt.Errorf("%w: unauthorized request", apperrors.ErrUnauthorized)
	}

	pair, err := h.Tokens.Rotate(raw)
	if err != nil {
		return err
	}
	h.setSessionCookies(c, pair)

	return respond(c, http.StatusOK, pair, "access token refreshed successfully")
}

func (h *AuthHandler) setSessionCookies(c echo.Context, pair token.Pair) {
	now := time.Now()
	c.SetCookie(CreateCookie("accessToken", pair.AccessToken, "/", now.Add(h.Tokens.AccessTTL)))
	c.SetCookie(CreateCookie("refreshToken", pair.RefreshToken, "/", now.Add(h.Tokens.RefreshTTL)))
}

func (h *AuthHandler) saveAvatar(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dstPath := filepath.Join(h.UploadDir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return dstPath, nil
}
