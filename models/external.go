package models

// ExternalMovieBrief is the lightweight listing shape produced from TMDB
// list responses. It is built fresh on every call and never persisted.
type ExternalMovieBrief struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterURL   string  `json:"posterUrl"`
	BackdropURL string  `json:"backdropUrl,omitempty"`
	Rating      float64 `json:"rating"`
	Year        string  `json:"year"`
	GenreIDs    []int   `json:"genreIds"`
}

// ExternalMovieDetail is the expanded detail shape for a single TMDB movie,
// including credits, trailer and similar titles.
type ExternalMovieDetail struct {
	ID          int                  `json:"id"`
	Title       string               `json:"title"`
	Overview    string               `json:"overview"`
	PosterURL   string               `json:"posterUrl"`
	BackdropURL string               `json:"backdropUrl,omitempty"`
	Rating      string               `json:"rating"`
	Year        int                  `json:"year"`
	Genres      string               `json:"genres"`
	Duration    string               `json:"duration"`
	Language    string               `json:"language"`
	Director    string               `json:"director,omitempty"`
	Cast        string               `json:"cast,omitempty"`
	TrailerKey  string               `json:"trailerKey,omitempty"`
	Quality     string               `json:"quality"`
	Similar     []ExternalMovieBrief `json:"similar"`
}

// ExternalGenre is a TMDB genre id/name pair.
type ExternalGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ExternalMoviePage is one page of briefs plus the upstream page count.
type ExternalMoviePage struct {
	Results    []ExternalMovieBrief `json:"results"`
	TotalPages int                  `json:"totalPages"`
}
