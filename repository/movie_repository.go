package repository

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"streamvault/database"
	"streamvault/models"

	"github.com/google/uuid"
)

// MovieRepository handles database operations for catalog movies
type MovieRepository struct {
	db *database.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *database.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, tmdb_id, title, description, genre, year, rating, duration,
	   poster_url, backdrop_url, video_url, trailer_url, quality, language,
	   director, cast_names, featured, created_at`

func scanMovie(scan func(dest ...interface{}) error) (*models.Movie, error) {
	var movie models.Movie
	var tmdbID sql.NullInt64
	var backdropURL, videoURL, trailerURL, director, cast sql.NullString

	err := scan(
		&movie.ID, &tmdbID, &movie.Title, &movie.Description, &movie.Genre,
		&movie.Year, &movie.Rating, &movie.Duration, &movie.PosterURL,
		&backdropURL, &videoURL, &trailerURL, &movie.Quality, &movie.Language,
		&director, &cast, &movie.Featured, &movie.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tmdbID.Valid {
		movie.TMDBID = int(tmdbID.Int64)
	}
	if backdropURL.Valid {
		movie.BackdropURL = backdropURL.String
	}
	if videoURL.Valid {
		movie.VideoURL = videoURL.String
	}
	if trailerURL.Valid {
		movie.TrailerURL = trailerURL.String
	}
	if director.Valid {
		movie.Director = director.String
	}
	if cast.Valid {
		movie.Cast = cast.String
	}

	return &movie, nil
}

func (r *MovieRepository) queryMovies(query string, args ...interface{}) ([]models.Movie, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Failed to close rows: %v", err)
		}
	}()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, *movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return movies, nil
}

// GetAll retrieves all catalog movies, newest first
func (r *MovieRepository) GetAll() ([]models.Movie, error) {
	query := fmt.Sprintf("SELECT %s FROM movies ORDER BY created_at DESC", movieColumns)
	return r.queryMovies(query)
}

// GetFeatured retrieves the featured catalog movies, newest first
func (r *MovieRepository) GetFeatured() ([]models.Movie, error) {
	query := fmt.Sprintf("SELECT %s FROM movies WHERE featured = 1 ORDER BY created_at DESC", movieColumns)
	return r.queryMovies(query)
}

// Search retrieves catalog movies whose title contains the query, case-insensitively
func (r *MovieRepository) Search(q string) ([]models.Movie, error) {
	query := fmt.Sprintf("SELECT %s FROM movies WHERE title LIKE ? COLLATE NOCASE ORDER BY created_at DESC", movieColumns)
	return r.queryMovies(query, "%"+q+"%")
}

// GetByID retrieves a movie by its catalog ID
func (r *MovieRepository) GetByID(id string) (*models.Movie, error) {
	query := fmt.Sprintf("SELECT %s FROM movies WHERE id = ?", movieColumns)

	movie, err := scanMovie(r.db.QueryRow(query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

// GetByTMDBID retrieves a movie by its TMDB id. Returns ErrNotFound when the
// external movie has not been imported.
func (r *MovieRepository) GetByTMDBID(tmdbID int) (*models.Movie, error) {
	query := fmt.Sprintf("SELECT %s FROM movies WHERE tmdb_id = ?", movieColumns)

	movie, err := scanMovie(r.db.QueryRow(query, tmdbID).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie by tmdb id: %w", err)
	}

	return movie, nil
}

// Create inserts a new movie into the catalog. A duplicate tmdb_id yields
// ErrDuplicate.
func (r *MovieRepository) Create(movie *models.Movie) error {
	query := `
		INSERT INTO movies (id, tmdb_id, title, description, genre, year, rating,
							duration, poster_url, backdrop_url, video_url, trailer_url,
							quality, language, director, cast_names, featured, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}
	movie.CreatedAt = time.Now()

	_, err := r.db.Exec(query,
		movie.ID, nullInt(movie.TMDBID), movie.Title, movie.Description,
		movie.Genre, movie.Year, movie.Rating, movie.Duration, movie.PosterURL,
		nullString(movie.BackdropURL), nullString(movie.VideoURL),
		nullString(movie.TrailerURL), movie.Quality, movie.Language,
		nullString(movie.Director), nullString(movie.Cast), movie.Featured,
		movie.CreatedAt,
	)
	if err != nil {
		if translated := translateErr(err); translated == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

// Update applies a partial update and returns the updated movie. Nil fields
// are left untouched.
func (r *MovieRepository) Update(id string, upd *models.MovieUpdate) (*models.Movie, error) {
	var sets []string
	var args []interface{}

	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Genre != nil {
		set("genre", *upd.Genre)
	}
	if upd.Year != nil {
		set("year", *upd.Year)
	}
	if upd.Rating != nil {
		set("rating", *upd.Rating)
	}
	if upd.Duration != nil {
		set("duration", *upd.Duration)
	}
	if upd.PosterURL != nil {
		set("poster_url", *upd.PosterURL)
	}
	if upd.BackdropURL != nil {
		set("backdrop_url", nullString(*upd.BackdropURL))
	}
	if upd.VideoURL != nil {
		set("video_url", nullString(*upd.VideoURL))
	}
	if upd.TrailerURL != nil {
		set("trailer_url", nullString(*upd.TrailerURL))
	}
	if upd.Quality != nil {
		set("quality", *upd.Quality)
	}
	if upd.Language != nil {
		set("language", *upd.Language)
	}
	if upd.Director != nil {
		set("director", nullString(*upd.Director))
	}
	if upd.Cast != nil {
		set("cast_names", nullString(*upd.Cast))
	}
	if upd.Featured != nil {
		set("featured", *upd.Featured)
	}

	if len(sets) == 0 {
		return r.GetByID(id)
	}

	query := fmt.Sprintf("UPDATE movies SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(id)
}

// Delete removes a movie from the catalog
func (r *MovieRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of catalog movies
func (r *MovieRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// Helper functions for handling null values
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(i int) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(i), Valid: true}
}
