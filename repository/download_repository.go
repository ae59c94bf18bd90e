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

// DownloadRepository handles database operations for per-user download lists
type DownloadRepository struct {
	db *database.DB
}

// NewDownloadRepository creates a new download repository
func NewDownloadRepository(db *database.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// GetByUser retrieves a user's downloads, newest first
func (r *DownloadRepository) GetByUser(userID string) ([]models.DownloadEntry, error) {
	query := `
		SELECT id, user_id, tmdb_id, title, poster_url, rating, year, quality, status, created_at
		FROM downloads
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Failed to close rows: %v", err)
		}
	}()

	var entries []models.DownloadEntry
	for rows.Next() {
		var entry models.DownloadEntry
		var posterURL, rating, year, quality sql.NullString

		err := rows.Scan(&entry.ID, &entry.UserID, &entry.TMDBID, &entry.Title,
			&posterURL, &rating, &year, &quality, &entry.Status, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan download entry: %w", err)
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
		if quality.Valid {
			entry.Quality = quality.String
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return entries, nil
}

// Exists reports whether the user already has the given TMDB movie in their downloads
func (r *DownloadRepository) Exists(userID string, tmdbID int) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM downloads WHERE user_id = ? AND tmdb_id = ?",
		userID, tmdbID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check downloads: %w", err)
	}
	return count > 0, nil
}

// Add inserts a download entry. Status defaults to "completed". A second
// entry for the same (user, tmdb id) pair yields ErrDuplicate.
func (r *DownloadRepository) Add(entry *models.DownloadEntry) error {
	query := `
		INSERT INTO downloads (id, user_id, tmdb_id, title, poster_url, rating, year, quality, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Status == "" {
		entry.Status = "completed"
	}
	entry.CreatedAt = time.Now()

	_, err := r.db.Exec(query,
		entry.ID, entry.UserID, entry.TMDBID, entry.Title,
		nullString(entry.PosterURL), nullString(entry.Rating),
		nullString(entry.Year), nullString(entry.Quality),
		entry.Status, entry.CreatedAt,
	)
	if err != nil {
		if translated := translateErr(err); translated == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to add download entry: %w", err)
	}

	return nil
}

// Remove deletes a download entry. Removing an absent entry is a no-op.
func (r *DownloadRepository) Remove(userID string, tmdbID int) error {
	_, err := r.db.Exec("DELETE FROM downloads WHERE user_id = ? AND tmdb_id = ?", userID, tmdbID)
	if err != nil {
		return fmt.Errorf("failed to remove download entry: %w", err)
	}
	return nil
}
