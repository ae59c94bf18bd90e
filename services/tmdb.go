// Package services provides external service integrations.
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"streamvault/models"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p"

	// Used when a detail payload has no release date.
	fallbackYear = 2024

	fallbackPosterURL    = "/images/movie-1.png"
	fallbackDescription  = "No description available."
	youtubeWatchURL      = "https://www.youtube.com/watch?v="
	maxSimilarResults    = 12
	maxDetailCastMembers = 8
	maxImportCastMembers = 5
	maxDirectors         = 2
)

// ErrMissingAPIKey is returned when a TMDB call is attempted without a
// configured API key. Only the calling operation fails; the process keeps
// serving catalog requests.
var ErrMissingAPIKey = errors.New("TMDB API key is not configured")

// TMDBService handles interactions with The Movie Database API and maps its
// responses into the canonical brief/detail shapes.
type TMDBService struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	client       *http.Client
}

// NewTMDBService creates a new TMDB service instance
func NewTMDBService(apiKey string) *TMDBService {
	return NewTMDBServiceWithBase(apiKey, tmdbBaseURL, tmdbImageBaseURL)
}

// NewTMDBServiceWithBase creates a TMDB service against a custom API and
// image base URL, for proxies and tests
func NewTMDBServiceWithBase(apiKey, baseURL, imageBaseURL string) *TMDBService {
	return &TMDBService{
		apiKey:       apiKey,
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Raw TMDB payload shapes. Optional nested sections decode to their zero
// values so a payload that omits them never fails the mapping.

type tmdbListItem struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
}

type tmdbPage struct {
	Page       int            `json:"page"`
	Results    []tmdbListItem `json:"results"`
	TotalPages int            `json:"total_pages"`
}

type tmdbGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tmdbGenreList struct {
	Genres []tmdbGenre `json:"genres"`
}

type tmdbCastMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type tmdbCrewMember struct {
	Job  string `json:"job"`
	Name string `json:"name"`
}

type tmdbVideo struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type tmdbDetail struct {
	ID               int         `json:"id"`
	Title            string      `json:"title"`
	Name             string      `json:"name"`
	Overview         string      `json:"overview"`
	PosterPath       string      `json:"poster_path"`
	BackdropPath     string      `json:"backdrop_path"`
	ReleaseDate      string      `json:"release_date"`
	Runtime          int         `json:"runtime"`
	VoteAverage      float64     `json:"vote_average"`
	OriginalLanguage string      `json:"original_language"`
	Genres           []tmdbGenre `json:"genres"`
	Credits          struct {
		Cast []tmdbCastMember `json:"cast"`
		Crew []tmdbCrewMember `json:"crew"`
	} `json:"credits"`
	Videos struct {
		Results []tmdbVideo `json:"results"`
	} `json:"videos"`
	Similar tmdbPage `json:"similar"`
}

// get performs one TMDB API call. Single attempt, no retry; any non-success
// status is surfaced as an error.
func (t *TMDBService) get(path string, params url.Values, target interface{}) error {
	if t.apiKey == "" {
		return ErrMissingAPIKey
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", t.apiKey)
	params.Set("language", "en-US")

	requestURL := fmt.Sprintf("%s%s?%s", t.baseURL, path, params.Encode())

	resp, err := t.client.Get(requestURL)
	if err != nil {
		return fmt.Errorf("failed to fetch from TMDB: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}

	return nil
}

func (t *TMDBService) listPage(path string, params url.Values) (*models.ExternalMoviePage, error) {
	var page tmdbPage
	if err := t.get(path, params, &page); err != nil {
		return nil, err
	}

	results := make([]models.ExternalMovieBrief, 0, len(page.Results))
	for _, item := range page.Results {
		results = append(results, t.toBrief(item))
	}

	return &models.ExternalMoviePage{Results: results, TotalPages: page.TotalPages}, nil
}

func pageParams(page int) url.Values {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}

// Trending returns the weekly trending movies
func (t *TMDBService) Trending(page int) (*models.ExternalMoviePage, error) {
	return t.listPage("/trending/movie/week", pageParams(page))
}

// Popular returns the current popular movies
func (t *TMDBService) Popular(page int) (*models.ExternalMoviePage, error) {
	return t.listPage("/movie/popular", pageParams(page))
}

// TopRated returns the top rated movies
func (t *TMDBService) TopRated(page int) (*models.ExternalMoviePage, error) {
	return t.listPage("/movie/top_rated", pageParams(page))
}

// NowPlaying returns movies currently in theaters
func (t *TMDBService) NowPlaying(page int) (*models.ExternalMoviePage, error) {
	return t.listPage("/movie/now_playing", pageParams(page))
}

// Upcoming returns upcoming movie releases
func (t *TMDBService) Upcoming(page int) (*models.ExternalMoviePage, error) {
	return t.listPage("/movie/upcoming", pageParams(page))
}

// Discover returns movies filtered by genre id
func (t *TMDBService) Discover(genreID string, page int) (*models.ExternalMoviePage, error) {
	params := pageParams(page)
	if genreID != "" {
		params.Set("with_genres", genreID)
	}
	params.Set("sort_by", "popularity.desc")
	return t.listPage("/discover/movie", params)
}

// Search performs a movie title search
func (t *TMDBService) Search(query string, page int) (*models.ExternalMoviePage, error) {
	params := pageParams(page)
	params.Set("query", query)
	return t.listPage("/search/movie", params)
}

// Genres returns the TMDB movie genre id/name table
func (t *TMDBService) Genres() ([]models.ExternalGenre, error) {
	var list tmdbGenreList
	if err := t.get("/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}

	genres := make([]models.ExternalGenre, 0, len(list.Genres))
	for _, g := range list.Genres {
		genres = append(genres, models.ExternalGenre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

// GetMovieDetail fetches one movie with credits, videos and similar titles
// and maps it to the canonical detail shape
func (t *TMDBService) GetMovieDetail(tmdbID int) (*models.ExternalMovieDetail, error) {
	detail, err := t.fetchDetail(tmdbID)
	if err != nil {
		return nil, err
	}
	return t.toDetail(detail), nil
}

// GetMovieForImport fetches one movie and maps it to the persisted catalog shape
func (t *TMDBService) GetMovieForImport(tmdbID int) (*models.Movie, error) {
	detail, err := t.fetchDetail(tmdbID)
	if err != nil {
		return nil, err
	}
	return t.toCatalogImport(detail), nil
}

func (t *TMDBService) fetchDetail(tmdbID int) (*tmdbDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,similar")

	var detail tmdbDetail
	if err := t.get(fmt.Sprintf("/movie/%d", tmdbID), params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// toBrief maps one raw list item to the listing shape. It is total: every
// missing optional field has an explicit default.
func (t *TMDBService) toBrief(item tmdbListItem) models.ExternalMovieBrief {
	title := item.Title
	if title == "" {
		title = item.Name
	}
	if title == "" {
		title = "Untitled"
	}

	genreIDs := item.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	return models.ExternalMovieBrief{
		ID:          item.ID,
		Title:       title,
		Overview:    item.Overview,
		PosterURL:   t.imageURL("w500", item.PosterPath),
		BackdropURL: t.imageURL("w1280", item.BackdropPath),
		Rating:      item.VoteAverage,
		Year:        releaseYear(item.ReleaseDate),
		GenreIDs:    genreIDs,
	}
}

// toDetail maps one raw detail payload to the full detail shape
func (t *TMDBService) toDetail(d *tmdbDetail) *models.ExternalMovieDetail {
	similar := make([]models.ExternalMovieBrief, 0, maxSimilarResults)
	for i, item := range d.Similar.Results {
		if i >= maxSimilarResults {
			break
		}
		similar = append(similar, t.toBrief(item))
	}

	title := d.Title
	if title == "" {
		title = d.Name
	}
	if title == "" {
		title = "Untitled"
	}

	return &models.ExternalMovieDetail{
		ID:          d.ID,
		Title:       title,
		Overview:    d.Overview,
		PosterURL:   t.imageURL("w500", d.PosterPath),
		BackdropURL: t.imageURL("w1280", d.BackdropPath),
		Rating:      formatRating(d.VoteAverage),
		Year:        releaseYearInt(d.ReleaseDate),
		Genres:      joinGenres(d.Genres),
		Duration:    formatDuration(d.Runtime),
		Language:    mapLanguage(d.OriginalLanguage),
		Director:    directorNames(d.Credits.Crew),
		Cast:        castNames(d.Credits.Cast, maxDetailCastMembers),
		TrailerKey:  trailerKey(d.Videos.Results),
		Quality:     "HD",
		Similar:     similar,
	}
}

// toCatalogImport maps one raw detail payload to the persisted movie shape.
// No stream is attached at import time, so VideoURL stays empty.
func (t *TMDBService) toCatalogImport(d *tmdbDetail) *models.Movie {
	description := d.Overview
	if description == "" {
		description = fallbackDescription
	}

	posterURL := t.imageURL("w500", d.PosterPath)
	if posterURL == "" {
		posterURL = fallbackPosterURL
	}

	var trailerURL string
	if key := trailerKey(d.Videos.Results); key != "" {
		trailerURL = youtubeWatchURL + key
	}

	return &models.Movie{
		TMDBID:      d.ID,
		Title:       d.Title,
		Description: description,
		Genre:       joinGenres(d.Genres),
		Year:        releaseYearInt(d.ReleaseDate),
		Rating:      formatRating(d.VoteAverage),
		Duration:    formatDuration(d.Runtime),
		PosterURL:   posterURL,
		BackdropURL: t.imageURL("w1280", d.BackdropPath),
		TrailerURL:  trailerURL,
		Quality:     "HD",
		Language:    mapLanguage(d.OriginalLanguage),
		Director:    directorNames(d.Credits.Crew),
		Cast:        castNames(d.Credits.Cast, maxImportCastMembers),
		Featured:    false,
	}
}

func (t *TMDBService) imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return t.imageBaseURL + "/" + size + path
}

// releaseYear returns the 4-character year prefix of a release date, or ""
func releaseYear(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	return releaseDate[:4]
}

func releaseYearInt(releaseDate string) int {
	year, err := strconv.Atoi(releaseYear(releaseDate))
	if err != nil {
		return fallbackYear
	}
	return year
}

// formatRating renders a vote average with one decimal place, "0" when absent
func formatRating(voteAverage float64) string {
	if voteAverage == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", voteAverage)
}

// formatDuration renders a runtime in minutes as "2h 18m", "N/A" when absent
func formatDuration(runtime int) string {
	if runtime <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%dh %dm", runtime/60, runtime%60)
}

var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"hi": "Hindi",
	"pt": "Portuguese",
	"ru": "Russian",
	"ar": "Arabic",
	"th": "Thai",
	"sv": "Swedish",
	"da": "Danish",
	"nl": "Dutch",
	"pl": "Polish",
	"tr": "Turkish",
	"id": "Indonesian",
	"tl": "Filipino",
}

// mapLanguage resolves an ISO language code to a display name, falling back
// to the uppercased code for unmapped languages
func mapLanguage(code string) string {
	if code == "" {
		code = "en"
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}

func joinGenres(genres []tmdbGenre) string {
	if len(genres) == 0 {
		return "Unknown"
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// directorNames joins up to two crew members whose job is exactly "Director"
func directorNames(crew []tmdbCrewMember) string {
	var names []string
	for _, member := range crew {
		if member.Job != "Director" {
			continue
		}
		names = append(names, member.Name)
		if len(names) == maxDirectors {
			break
		}
	}
	return strings.Join(names, ", ")
}

// castNames joins up to limit top-billed cast names
func castNames(cast []tmdbCastMember, limit int) string {
	names := make([]string, 0, limit)
	for i, member := range cast {
		if i >= limit {
			break
		}
		names = append(names, member.Name)
	}
	return strings.Join(names, ", ")
}

// trailerKey returns the key of the first YouTube-hosted trailer, or ""
func trailerKey(videos []tmdbVideo) string {
	for _, video := range videos {
		if video.Type == "Trailer" && video.Site == "YouTube" {
			return video.Key
		}
	}
	return ""
}
