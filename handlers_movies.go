package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"streamvault/models"
	"streamvault/repository"

	"github.com/gorilla/mux"
)

func (app *App) getMoviesHandler(w http.ResponseWriter, _ *http.Request) {
	movies, err := app.movieRepo.GetAll()
	if err != nil {
		log.Printf("Error getting movies: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch movies")
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	respondJSON(w, http.StatusOK, movies)
}

func (app *App) getFeaturedMoviesHandler(w http.ResponseWriter, _ *http.Request) {
	movies, err := app.movieRepo.GetFeatured()
	if err != nil {
		log.Printf("Error getting featured movies: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch featured movies")
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	respondJSON(w, http.StatusOK, movies)
}

func (app *App) searchMoviesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	movies, err := app.movieRepo.Search(query)
	if err != nil {
		log.Printf("Error searching movies: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to search movies")
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	respondJSON(w, http.StatusOK, movies)
}

func (app *App) getMovieHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	movie, err := app.movieRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Movie not found")
			return
		}
		log.Printf("Error getting movie: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch movie")
		return
	}

	respondJSON(w, http.StatusOK, movie)
}

// validateMovie checks the required catalog fields, returning one message per
// invalid field.
func validateMovie(movie *models.Movie) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(movie.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(movie.Description) == "" {
		errs["description"] = "description is required"
	}
	if strings.TrimSpace(movie.Genre) == "" {
		errs["genre"] = "genre is required"
	}
	if movie.Year <= 0 {
		errs["year"] = "year is required"
	}
	if strings.TrimSpace(movie.Duration) == "" {
		errs["duration"] = "duration is required"
	}
	if strings.TrimSpace(movie.PosterURL) == "" {
		errs["posterUrl"] = "posterUrl is required"
	}
	return errs
}

func (app *App) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateMovie(&movie); len(errs) > 0 {
		respondValidationErrors(w, "Invalid movie data", errs)
		return
	}

	// Schema defaults for optional fields
	if movie.Rating == "" {
		movie.Rating = "0"
	}
	if movie.Quality == "" {
		movie.Quality = "HD"
	}
	if movie.Language == "" {
		movie.Language = "English"
	}

	if err := app.movieRepo.Create(&movie); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondMessage(w, http.StatusConflict, "A movie with this TMDB id already exists")
			return
		}
		log.Printf("Error creating movie: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create movie")
		return
	}

	respondJSON(w, http.StatusCreated, movie)
}

func (app *App) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var upd models.MovieUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Fields that are NOT NULL in the schema cannot be blanked by a partial
	// update.
	errs := make(map[string]string)
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		errs["title"] = "title cannot be empty"
	}
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		errs["description"] = "description cannot be empty"
	}
	if upd.Genre != nil && strings.TrimSpace(*upd.Genre) == "" {
		errs["genre"] = "genre cannot be empty"
	}
	if upd.Year != nil && *upd.Year <= 0 {
		errs["year"] = "year must be positive"
	}
	if upd.Duration != nil && strings.TrimSpace(*upd.Duration) == "" {
		errs["duration"] = "duration cannot be empty"
	}
	if upd.PosterURL != nil && strings.TrimSpace(*upd.PosterURL) == "" {
		errs["posterUrl"] = "posterUrl cannot be empty"
	}
	if len(errs) > 0 {
		respondValidationErrors(w, "Invalid movie data", errs)
		return
	}

	movie, err := app.movieRepo.Update(id, &upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Movie not found")
			return
		}
		log.Printf("Error updating movie: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to update movie")
		return
	}

	respondJSON(w, http.StatusOK, movie)
}

func (app *App) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := app.movieRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Movie not found")
			return
		}
		log.Printf("Error deleting movie: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to delete movie")
		return
	}

	respondMessage(w, http.StatusOK, "Movie deleted")
}
