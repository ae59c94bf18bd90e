package repository

import (
	"testing"

	"streamvault/models"

	"github.com/stretchr/testify/assert"
)

func setupUserRepo(t *testing.T) (*UserRepository, func()) {
	db, cleanup := setupTestDB(t)
	return NewUserRepository(db), cleanup
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo, cleanup := setupUserRepo(t)
	defer cleanup()

	user := &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
	}
	err := repo.Create(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	byName, err := repo.GetByUsername("alice")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "alice@example.com", byName.Email)
	assert.Equal(t, "$2a$10$hash", byName.PasswordHash)

	byID, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo, cleanup := setupUserRepo(t)
	defer cleanup()

	assert.NoError(t, repo.Create(&models.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: "h",
	}))

	err := repo.Create(&models.User{
		Username: "alice", Email: "other@example.com", PasswordHash: "h",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo, cleanup := setupUserRepo(t)
	defer cleanup()

	assert.NoError(t, repo.Create(&models.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: "h",
	}))

	err := repo.Create(&models.User{
		Username: "bob", Email: "alice@example.com", PasswordHash: "h",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo, cleanup := setupUserRepo(t)
	defer cleanup()

	_, err := repo.GetByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}
