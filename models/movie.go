package models

import "time"

// Movie represents a movie in the local catalog
type Movie struct {
	ID          string    `json:"id"`
	TMDBID      int       `json:"tmdbId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Year        int       `json:"year"`
	Rating      string    `json:"rating"`
	Duration    string    `json:"duration"`
	PosterURL   string    `json:"posterUrl"`
	BackdropURL string    `json:"backdropUrl,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	TrailerURL  string    `json:"trailerUrl,omitempty"`
	Quality     string    `json:"quality"`
	Language    string    `json:"language"`
	Director    string    `json:"director,omitempty"`
	Cast        string    `json:"cast,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MovieUpdate carries a partial update for a catalog movie. Nil fields are
// left untouched.
type MovieUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	Year        *int    `json:"year"`
	Rating      *string `json:"rating"`
	Duration    *string `json:"duration"`
	PosterURL   *string `json:"posterUrl"`
	BackdropURL *string `json:"backdropUrl"`
	VideoURL    *string `json:"videoUrl"`
	TrailerURL  *string `json:"trailerUrl"`
	Quality     *string `json:"quality"`
	Language    *string `json:"language"`
	Director    *string `json:"director"`
	Cast        *string `json:"cast"`
	Featured    *bool   `json:"featured"`
}
