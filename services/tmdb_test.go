package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTMDBService(serverURL string) *TMDBService {
	return NewTMDBServiceWithBase("test-key", serverURL, tmdbImageBaseURL)
}

func TestToBrief_CompleteItem(t *testing.T) {
	svc := NewTMDBService("test-key")

	brief := svc.toBrief(tmdbListItem{
		ID:           603,
		Title:        "The Matrix",
		Overview:     "A hacker learns the truth.",
		PosterPath:   "/poster.jpg",
		BackdropPath: "/backdrop.jpg",
		ReleaseDate:  "1999-03-31",
		VoteAverage:  8.2,
		GenreIDs:     []int{28, 878},
	})

	assert.Equal(t, 603, brief.ID)
	assert.Equal(t, "The Matrix", brief.Title)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", brief.PosterURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/backdrop.jpg", brief.BackdropURL)
	assert.Equal(t, "1999", brief.Year)
	assert.Equal(t, 8.2, brief.Rating)
	assert.Equal(t, []int{28, 878}, brief.GenreIDs)
}

func TestToBrief_EmptyItemNeverFails(t *testing.T) {
	svc := NewTMDBService("test-key")

	brief := svc.toBrief(tmdbListItem{})

	assert.Equal(t, "Untitled", brief.Title)
	assert.Equal(t, "", brief.PosterURL)
	assert.Equal(t, "", brief.BackdropURL)
	assert.Equal(t, "", brief.Year)
	assert.Equal(t, 0.0, brief.Rating)
	assert.NotNil(t, brief.GenreIDs)
	assert.Empty(t, brief.GenreIDs)
}

func TestToBrief_TitleFallsBackToName(t *testing.T) {
	svc := NewTMDBService("test-key")

	brief := svc.toBrief(tmdbListItem{ID: 1, Name: "Some Show"})
	assert.Equal(t, "Some Show", brief.Title)
}

func TestToDetail_FullPayload(t *testing.T) {
	svc := NewTMDBService("test-key")

	raw := &tmdbDetail{
		ID:               42,
		Title:            "Test Film",
		ReleaseDate:      "2024-03-15",
		Runtime:          138,
		VoteAverage:      8.47,
		OriginalLanguage: "en",
		Genres:           []tmdbGenre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Sci-Fi"}},
	}
	raw.Credits.Cast = []tmdbCastMember{{Name: "Lead Actor"}, {Name: "Second Actor"}}
	raw.Credits.Crew = []tmdbCrewMember{
		{Job: "Producer", Name: "Someone Else"},
		{Job: "Director", Name: "Alex Rivera"},
	}

	detail := svc.toDetail(raw)

	assert.Equal(t, "2h 18m", detail.Duration)
	assert.Equal(t, "8.5", detail.Rating)
	assert.Equal(t, 2024, detail.Year)
	assert.Equal(t, "Action, Sci-Fi", detail.Genres)
	assert.Equal(t, "Alex Rivera", detail.Director)
	assert.Equal(t, "English", detail.Language)
	assert.Equal(t, "Lead Actor, Second Actor", detail.Cast)
	assert.Equal(t, "HD", detail.Quality)
}

func TestToDetail_MissingNestedSections(t *testing.T) {
	svc := NewTMDBService("test-key")

	detail := svc.toDetail(&tmdbDetail{ID: 7, Title: "Bare"})

	assert.Equal(t, "Unknown", detail.Genres)
	assert.Equal(t, "N/A", detail.Duration)
	assert.Equal(t, "0", detail.Rating)
	assert.Equal(t, fallbackYear, detail.Year)
	assert.Equal(t, "", detail.Director)
	assert.Equal(t, "", detail.Cast)
	assert.Equal(t, "", detail.TrailerKey)
	assert.NotNil(t, detail.Similar)
	assert.Empty(t, detail.Similar)
	assert.Equal(t, "English", detail.Language)
}

func TestToDetail_CapsCastDirectorsAndSimilar(t *testing.T) {
	svc := NewTMDBService("test-key")

	var cast []tmdbCastMember
	for i := 0; i < 12; i++ {
		cast = append(cast, tmdbCastMember{Name: "Actor", Order: i})
	}
	var similar []tmdbListItem
	for i := 0; i < 20; i++ {
		similar = append(similar, tmdbListItem{ID: i + 1, Title: "Similar"})
	}

	raw := &tmdbDetail{ID: 1, Similar: tmdbPage{Results: similar}}
	raw.Credits.Cast = cast
	raw.Credits.Crew = []tmdbCrewMember{
		{Job: "Director", Name: "One"},
		{Job: "Director", Name: "Two"},
		{Job: "Director", Name: "Three"},
	}

	detail := svc.toDetail(raw)

	assert.Equal(t, "One, Two", detail.Director)
	assert.Len(t, detail.Similar, maxSimilarResults)
	// 8 names joined by ", "
	assert.Equal(t, "Actor, Actor, Actor, Actor, Actor, Actor, Actor, Actor", detail.Cast)
}

func TestToDetail_TrailerSelection(t *testing.T) {
	svc := NewTMDBService("test-key")

	raw := &tmdbDetail{ID: 1}
	raw.Videos.Results = []tmdbVideo{
		{Key: "teaser1", Site: "YouTube", Type: "Teaser"},
		{Key: "vimeo1", Site: "Vimeo", Type: "Trailer"},
		{Key: "real-trailer", Site: "YouTube", Type: "Trailer"},
	}

	detail := svc.toDetail(raw)

	assert.Equal(t, "real-trailer", detail.TrailerKey)
}

func TestToCatalogImport(t *testing.T) {
	svc := NewTMDBService("test-key")

	raw := &tmdbDetail{
		ID:               550,
		Title:            "Fight Club",
		Overview:         "An insomniac office worker.",
		PosterPath:       "/fc.jpg",
		ReleaseDate:      "1999-10-15",
		Runtime:          139,
		VoteAverage:      8.438,
		OriginalLanguage: "en",
		Genres:           []tmdbGenre{{ID: 18, Name: "Drama"}},
	}
	raw.Credits.Cast = []tmdbCastMember{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"}, {Name: "F"},
	}
	raw.Credits.Crew = []tmdbCrewMember{{Job: "Director", Name: "David Fincher"}}
	raw.Videos.Results = []tmdbVideo{{Key: "abc123", Site: "YouTube", Type: "Trailer"}}

	movie := svc.toCatalogImport(raw)

	assert.Equal(t, 550, movie.TMDBID)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, 1999, movie.Year)
	assert.Equal(t, "8.4", movie.Rating)
	assert.Equal(t, "2h 19m", movie.Duration)
	assert.Equal(t, "Drama", movie.Genre)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", movie.TrailerURL)
	assert.Equal(t, "", movie.VideoURL)
	assert.Equal(t, "HD", movie.Quality)
	assert.False(t, movie.Featured)
	// Import keeps only the top five billed names
	assert.Equal(t, "A, B, C, D, E", movie.Cast)
}

func TestToCatalogImport_Defaults(t *testing.T) {
	svc := NewTMDBService("test-key")

	movie := svc.toCatalogImport(&tmdbDetail{ID: 1, Title: "Bare"})

	assert.Equal(t, fallbackDescription, movie.Description)
	assert.Equal(t, fallbackPosterURL, movie.PosterURL)
	assert.Equal(t, "Unknown", movie.Genre)
	assert.Equal(t, "N/A", movie.Duration)
	assert.Equal(t, "", movie.TrailerURL)
	assert.Equal(t, "English", movie.Language)
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		runtime  int
		expected string
	}{
		{0, "N/A"},
		{-5, "N/A"},
		{59, "0h 59m"},
		{60, "1h 0m"},
		{138, "2h 18m"},
		{200, "3h 20m"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, formatDuration(tc.runtime))
	}
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "0", formatRating(0))
	assert.Equal(t, "8.5", formatRating(8.47))
	assert.Equal(t, "7.0", formatRating(7))
	assert.Equal(t, "10.0", formatRating(10))
}

func TestMapLanguage(t *testing.T) {
	cases := map[string]string{
		"en": "English", "es": "Spanish", "fr": "French", "de": "German",
		"it": "Italian", "ja": "Japanese", "ko": "Korean", "zh": "Chinese",
		"hi": "Hindi", "pt": "Portuguese", "ru": "Russian", "ar": "Arabic",
		"th": "Thai", "sv": "Swedish", "da": "Danish", "nl": "Dutch",
		"pl": "Polish", "tr": "Turkish", "id": "Indonesian", "tl": "Filipino",
	}
	for code, name := range cases {
		assert.Equal(t, name, mapLanguage(code))
	}

	// Unmapped codes fall back to the uppercased code
	assert.Equal(t, "XX", mapLanguage("xx"))
	// Empty code is treated as English
	assert.Equal(t, "English", mapLanguage(""))
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, "1999", releaseYear("1999-03-31"))
	assert.Equal(t, "", releaseYear(""))
	assert.Equal(t, "", releaseYear("19"))
	assert.Equal(t, 1999, releaseYearInt("1999-03-31"))
	assert.Equal(t, fallbackYear, releaseYearInt(""))
}

func TestSearch_MapsResultsAndTotalPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"page":        2,
			"total_pages": 9,
			"results": []map[string]interface{}{
				{"id": 603, "title": "The Matrix", "release_date": "1999-03-31", "vote_average": 8.2},
				{"id": 604},
			},
		})
	}))
	defer server.Close()

	svc := newTestTMDBService(server.URL)

	page, err := svc.Search("matrix", 2)
	assert.NoError(t, err)
	assert.Equal(t, 9, page.TotalPages)
	assert.Len(t, page.Results, 2)
	assert.Equal(t, "The Matrix", page.Results[0].Title)
	assert.Equal(t, "Untitled", page.Results[1].Title)
}

func TestGenres(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"genres": []map[string]interface{}{
				{"id": 28, "name": "Action"},
				{"id": 35, "name": "Comedy"},
			},
		})
	}))
	defer server.Close()

	svc := newTestTMDBService(server.URL)

	genres, err := svc.Genres()
	assert.NoError(t, err)
	assert.Len(t, genres, 2)
	assert.Equal(t, "Action", genres[0].Name)
}

func TestGetMovieDetail_RequestsAppendedSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "credits,videos,similar", r.URL.Query().Get("append_to_response"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           603,
			"title":        "The Matrix",
			"runtime":      136,
			"release_date": "1999-03-31",
			"similar": map[string]interface{}{
				"results": []map[string]interface{}{{"id": 604, "title": "Reloaded"}},
			},
		})
	}))
	defer server.Close()

	svc := newTestTMDBService(server.URL)

	detail, err := svc.GetMovieDetail(603)
	assert.NoError(t, err)
	assert.Equal(t, "The Matrix", detail.Title)
	assert.Equal(t, "2h 16m", detail.Duration)
	assert.Len(t, detail.Similar, 1)
	assert.Equal(t, "Reloaded", detail.Similar[0].Title)
}

func TestGet_MissingAPIKey(t *testing.T) {
	svc := NewTMDBService("")

	_, err := svc.Popular(1)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGet_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := newTestTMDBService(server.URL)

	_, err := svc.Popular(1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
