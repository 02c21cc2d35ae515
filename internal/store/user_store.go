package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fintrack/internal/apperrors"
	"fintrack/internal/models"
)

// UserStore persists user identity and the single live refresh token per
// user. Refresh rotation uses one conditional UPDATE so the equality check
// and the overwrite are atomic.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

func (s *UserStore) Create(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByLogin resolves a user by username or email, whichever matches.
func (s *UserStore) FindByLogin(login string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// SetRefreshToken unconditionally overwrites the stored refresh token,
// invalidating every previously issued one for this user.
func (s *UserStore) SetRefreshToken(userID uint, token string) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", token)
	if res.Error != nil {
		return fmt.Errorf("store refresh token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SwapRefreshToken replaces the stored refresh token only if it still equals
// old. A zero row count means the presented token was already superseded, or
// a concurrent rotation won the race.
func (s *UserStore) SwapRefreshToken(userID uint, old, new string) error {
	res := s.DB.Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", userID, old).
		Update("refresh_token", new)
	if res.Error != nil {
		return fmt.Errorf("rotate refresh token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrSessionSuperseded
	}
	return nil
}

func (s *UserStore) ClearRefreshToken(userID uint) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", "")
	if res.Error != nil {
		return fmt.Errorf("clear refresh token: %w", res.Error)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "UNIQUE constraint") ||
		strings.Contains(s, "unique constraint")
}
