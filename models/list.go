package models

import "time"

// WatchlistEntry is one movie saved to a user's watchlist. At most one entry
// exists per (user, TMDB id) pair.
type WatchlistEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TMDBID    int       `json:"tmdbId"`
	Title     string    `json:"title"`
	PosterURL string    `json:"posterUrl,omitempty"`
	Rating    string    `json:"rating,omitempty"`
	Year      string    `json:"year,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DownloadEntry is one movie in a user's downloads list. Same uniqueness rule
// as the watchlist.
type DownloadEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TMDBID    int       `json:"tmdbId"`
	Title     string    `json:"title"`
	PosterURL string    `json:"posterUrl,omitempty"`
	Rating    string    `json:"rating,omitempty"`
	Year      string    `json:"year,omitempty"`
	Quality   string    `json:"quality,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
