package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"streamvault/database"
	"streamvault/models"

	"github.com/google/uuid"
)

// WatchlistRepository handles database operations for per-user watchlists
type WatchlistRepository struct {
	db *database.DB
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *database.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// GetByUser retrieves a user's watchlist, newest first
func (r *WatchlistRepository) GetByUser(userID string) ([]models.WatchlistEntry, error) {
	query := `
		SELECT id, user_id, tmdb_id, title, poster_url, rating, year, created_at
		FROM watchlist
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Failed to close rows: %v", err)
		}
	}()

	var entries []models.WatchlistEntry
	for rows.Next() {
		var entry models.WatchlistEntry
		var posterURL, rating, year sql.NullString

		err := rows.Scan(&entry.ID, &entry.UserID, &entry.TMDBID, &entry.Title,
			&posterURL, &rating, &year, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}

		if posterURL.Valid {
			entry.PosterURL = posterURL.String
		}
		if rating.Valid {
			entry.Rating = rating.String
		}
		if year.Valid {
			entry.Year = year.String
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return entries, nil
}

// Exists reports whether the user already has the given TMDB movie saved
func (r *WatchlistRepository) Exists(userID string, tmdbID int) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM watchlist WHERE user_id = ? AND tmdb_id = ?",
		userID, tmdbID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check watchlist: %w", err)
	}
	return count > 0, nil
}

// Add inserts a watchlist entry. A second entry for the same (user, tmdb id)
// pair yields ErrDuplicate.
func (r *WatchlistRepository) Add(entry *models.WatchlistEntry) error {
	query := `
		INSERT INTO watchlist (id, user_id, tmdb_id, title, poster_url, rating, year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now()

	_, err := r.db.Exec(query,
		entry.ID, entry.UserID, entry.TMDBID, entry.Title,
		nullString(entry.PosterURL), nullString(entry.Rating),
		nullString(entry.Year), entry.CreatedAt,
	)
	if err != nil {
		if translated := translateErr(err); translated == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to add watchlist entry: %w", err)
	}

	return nil
}

// Remove deletes a watchlist entry. Removing an absent entry is a no-op.
func (r *WatchlistRepository) Remove(userID string, tmdbID int) error {
	_, err := r.db.Exec("DELETE FROM watchlist WHERE user_id = ? AND tmdb_id = ?", userID, tmdbID)
	if err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	return nil
}
