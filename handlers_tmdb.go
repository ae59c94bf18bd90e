package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"streamvault/models"
	"streamvault/repository"

	"github.com/gorilla/mux"
)

func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// listTMDB runs one TMDB listing call and writes the page or a 500
func (app *App) listTMDB(w http.ResponseWriter, fetch func() (*models.ExternalMoviePage, error)) {
	page, err := fetch()
	if err != nil {
		log.Printf("Error fetching from TMDB: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch movies from TMDB")
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (app *App) tmdbTrendingHandler(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	app.listTMDB(w, func() (*models.ExternalMoviePage, error) { return app.tmdbService.Trending(page) })
}

func (app *App) tmdbPopularHandler(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	app.listTMDB(w, func() (*models.ExternalMoviePage, error) { return app.tmdbService.Popular(page) })
}

func (app *App) tmdbTopRatedHandler(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	app.listTMDB(w, func() (*models.ExternalMoviePage, error) { return app.tmdbService.TopRated(page) })
}

func (app *App) tmdbNowPlayingHandler(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	app.listTMDB(w, func() (*models.ExternalMoviePage, error) { return app.tmdbService.NowPlaying(page) })
}

func (app *App) tmdbUpcomingHandler(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	app.listTMDB(w, func() (*models.ExternalMoviePage, error) { return app.tmdbService.Upcoming(page) })
}

func (app *App) tmdbDiscoverHandler(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	page := parsePage(r)
	app.listTMDB(w, func() (*models.ExternalMoviePage, error) { return app.tmdbService.Discover(genre, page) })
}

func (app *App) tmdbSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		// Nothing to search for; skip the upstream call entirely.
		respondJSON(w, http.StatusOK, &models.ExternalMoviePage{
			Results:    []models.ExternalMovieBrief{},
			TotalPages: 0,
		})
		return
	}

	page := parsePage(r)
	app.listTMDB(w, func() (*models.ExternalMoviePage, error) { return app.tmdbService.Search(query, page) })
}

func (app *App) tmdbGenresHandler(w http.ResponseWriter, _ *http.Request) {
	genres, err := app.tmdbService.Genres()
	if err != nil {
		log.Printf("Error fetching TMDB genres: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch genres from TMDB")
		return
	}
	respondJSON(w, http.StatusOK, genres)
}

func (app *App) tmdbMovieDetailHandler(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid TMDB ID")
		return
	}

	detail, err := app.tmdbService.GetMovieDetail(tmdbID)
	if err != nil {
		log.Printf("Error fetching TMDB movie %d: %v", tmdbID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch movie from TMDB")
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

func (app *App) tmdbCheckImportedHandler(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.Atoi(mux.Vars(r)["tmdbId"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid TMDB ID")
		return
	}

	movie, err := app.movieRepo.GetByTMDBID(tmdbID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondJSON(w, http.StatusOK, map[string]interface{}{"imported": false})
			return
		}
		log.Printf("Error checking import state: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to check import state")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"imported": true, "movie": movie})
}

func (app *App) tmdbImportHandler(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.Atoi(mux.Vars(r)["tmdbId"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid TMDB ID")
		return
	}

	// Pre-check so an already-imported movie skips the TMDB fetch. The
	// unique constraint below remains the real guard.
	existing, err := app.movieRepo.GetByTMDBID(tmdbID)
	if err == nil {
		respondJSON(w, http.StatusConflict, map[string]interface{}{
			"message": "Movie already imported",
			"movie":   existing,
		})
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Error checking existing import: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to import movie")
		return
	}

	movie, err := app.tmdbService.GetMovieForImport(tmdbID)
	if err != nil {
		log.Printf("Error fetching TMDB movie %d for import: %v", tmdbID, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch movie from TMDB")
		return
	}

	if err := app.movieRepo.Create(movie); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent import of the same movie.
			if existing, getErr := app.movieRepo.GetByTMDBID(tmdbID); getErr == nil {
				respondJSON(w, http.StatusConflict, map[string]interface{}{
					"message": "Movie already imported",
					"movie":   existing,
				})
				return
			}
			respondMessage(w, http.StatusConflict, "Movie already imported")
			return
		}
		log.Printf("Error saving imported movie: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to save movie")
		return
	}

	respondJSON(w, http.StatusCreated, movie)
}
