package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fintrack/internal/apperrors"
	"fintrack/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Income{}, &models.Expense{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func TestCreateUserDuplicate(t *testing.T) {
	users := NewUserStore(initTestDB(t))

	first := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(&first))
	require.NotZero(t, first.ID)

	dupUsername := models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	require.ErrorIs(t, users.Create(&dupUsername), apperrors.ErrConflict)

	dupEmail := models.User{Username: "bob", Email: "alice@example.com", PasswordHash: "x"}
	require.ErrorIs(t, users.Create(&dupEmail), apperrors.ErrConflict)
}

func TestFindByLogin(t *testing.T) {
	users := NewUserStore(initTestDB(t))

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(&user))

	byUsername, err := users.FindByLogin("alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, byUsername.ID)

	byEmail, err := users.FindByLogin("alice@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	_, err = users.FindByLogin("nobody")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSwapRefreshToken(t *testing.T) {
	users := NewUserStore(initTestDB(t))

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(&user))
	require.NoError(t, users.SetRefreshToken(user.ID, "old"))

	// first swap wins
	require.NoError(t, users.SwapRefreshToken(user.ID, "old", "new"))

	// same presented value again loses: the stored token moved on
	require.ErrorIs(t, users.SwapRefreshToken(user.ID, "old", "newer"), apperrors.ErrSessionSuperseded)

	stored, err := users.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "new", stored.RefreshToken)
}

func TestClearRefreshToken(t *testing.T) {
	users := NewUserStore(initTestDB(t))

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(&user))
	require.NoError(t, users.SetRefreshToken(user.ID, "live"))

	require.NoError(t, users.ClearRefreshToken(user.ID))

	require.ErrorIs(t, users.SwapRefreshToken(user.ID, "live", "next"), apperrors.ErrSessionSuperseded)
}
