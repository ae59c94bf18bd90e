package repository

import (
	"testing"

	"streamvault/models"

	"github.com/stretchr/testify/assert"
)

func setupWatchlistRepo(t *testing.T) (*WatchlistRepository, func()) {
	db, cleanup := setupTestDB(t)
	return NewWatchlistRepository(db), cleanup
}

func TestWatchlistRepository_AddAndGetByUser(t *testing.T) {
	repo, cleanup := setupWatchlistRepo(t)
	defer cleanup()

	entry := &models.WatchlistEntry{
		UserID:    "user-1",
		TMDBID:    603,
		Title:     "The Matrix",
		PosterURL: "https://image.tmdb.org/t/p/w500/poster.jpg",
		Rating:    "8.2",
		Year:      "1999",
	}
	err := repo.Add(entry)
	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID)

	entries, err := repo.GetByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "The Matrix", entries[0].Title)
	assert.Equal(t, "1999", entries[0].Year)
}

func TestWatchlistRepository_AddDuplicate(t *testing.T) {
	repo, cleanup := setupWatchlistRepo(t)
	defer cleanup()

	entry := &models.WatchlistEntry{UserID: "user-1", TMDBID: 603, Title: "The Matrix"}
	assert.NoError(t, repo.Add(entry))

	err := repo.Add(&models.WatchlistEntry{UserID: "user-1", TMDBID: 603, Title: "The Matrix"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestWatchlistRepository_SameMovieDifferentUsers(t *testing.T) {
	repo, cleanup := setupWatchlistRepo(t)
	defer cleanup()

	assert.NoError(t, repo.Add(&models.WatchlistEntry{UserID: "user-1", TMDBID: 603, Title: "The Matrix"}))
	assert.NoError(t, repo.Add(&models.WatchlistEntry{UserID: "user-2", TMDBID: 603, Title: "The Matrix"}))

	entries, err := repo.GetByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWatchlistRepository_Exists(t *testing.T) {
	repo, cleanup := setupWatchlistRepo(t)
	defer cleanup()

	assert.NoError(t, repo.Add(&models.WatchlistEntry{UserID: "user-1", TMDBID: 603, Title: "The Matrix"}))

	exists, err := repo.Exists("user-1", 603)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists("user-1", 999)
	assert.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.Exists("user-2", 603)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestWatchlistRepository_Remove(t *testing.T) {
	repo, cleanup := setupWatchlistRepo(t)
	defer cleanup()

	assert.NoError(t, repo.Add(&models.WatchlistEntry{UserID: "user-1", TMDBID: 603, Title: "The Matrix"}))

	assert.NoError(t, repo.Remove("user-1", 603))

	exists, err := repo.Exists("user-1", 603)
	assert.NoError(t, err)
	assert.False(t, exists)

	// Removing an absent entry is still a success.
	assert.NoError(t, repo.Remove("user-1", 603))
}

func TestWatchlistRepository_GetByUserEmpty(t *testing.T) {
	repo, cleanup := setupWatchlistRepo(t)
	defer cleanup()

	entries, err := repo.GetByUser("user-1")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
