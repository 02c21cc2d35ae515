package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fintrack/internal/apperrors"
	"fintrack/internal/store"
)

// Pair is one issued session: a short-lived access token and the refresh
// token whose value is also persisted on the user row.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Service struct {
	Users         *store.UserStore
	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewService(users *store.UserStore, jwtSecret, refreshSecret []byte, accessMinutes, refreshMinutes int) *Service {
	return &Service{
		Users:         users,
		JWTSecret:     jwtSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     time.Duration(accessMinutes) * time.Minute,
		RefreshTTL:    time.Duration(refreshMinutes) * time.Minute,
	}
}

// Issue signs a fresh pair for the user and overwrites the stored refresh
// token, which invalidates every previously issued refresh token. At most
// one live session per user.
func (s *Service) Issue(userID uint) (Pair, error) {
	pair, err := s.sign(userID)
	if err != nil {
		return Pair{}, err
	}
	if err := s.Users.SetRefreshToken(userID, pair.RefreshToken); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// ValidateAccess checks signature and expiry of an access token and returns
// the embedded user id. Stateless, no storage lookup.
func (s *Service) ValidateAccess(raw string) (uint, error) {
	claims, err := parseHS256(raw, s.JWTSecret)
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}
	if typ, ok := claims["typ"]; ok && typ == "refresh" {
		return 0, apperrors.ErrInvalidToken
	}
	return subject(claims)
}

// Rotate exchanges a valid refresh token for a new pair. The presented value
// must still be the one stored on the user; the comparison and the overwrite
// happen in a single conditional update, so of two concurrent rotations with
// the same token exactly one succeeds.
func (s *Service) Rotate(raw string) (Pair, error) {
	claims, err := parseHS256(raw, s.RefreshSecret)
	if err != nil {
		return Pair{}, apperrors.ErrInvalidToken
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return Pair{}, apperrors.ErrInvalidToken
	}

	userID, err := subject(claims)
	if err != nil {
		return Pair{}, err
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		return Pair{}, apperrors.ErrInvalidToken
	}

	pair, err := s.sign(user.ID)
	if err != nil {
		return Pair{}, err
	}
	if err := s.Users.SwapRefreshToken(user.ID, raw, pair.RefreshToken); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// Revoke clears the stored refresh token, killing any outstanding refresh
// token for the user even before it expires.
func (s *Service) Revoke(userID uint) error {
	return s.Users.ClearRefreshToken(userID)
}

// sign mints a pair with unique jti claims. iat has second granularity and
// HS256 is deterministic, so without the jti two tokens for the same user in
// the same second would be byte-identical and rotation could not supersede
// the old one.
func (s *Service) sign(userID uint) (Pair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.AccessTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.JWTSecret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshClaims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.RefreshTTL).Unix(),
		"typ": "refresh",
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.RefreshSecret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func parseHS256(raw string, secret []byte) (jwt.MapClaims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("cannot parse claims")
	}
	return claims, nil
}

func subject(claims jwt.MapClaims) (uint, error) {
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, apperrors.ErrInvalidToken
	}
	return uint(sub), nil
}
