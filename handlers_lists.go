package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"streamvault/models"
	"streamvault/repository"

	"github.com/gorilla/mux"
)

// currentUser resolves the signed-in user id, writing a 401 when the request
// carries no valid session.
func (app *App) currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := app.sessions.CurrentUserID(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}

func parseTMDBIDVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	tmdbID, err := strconv.Atoi(mux.Vars(r)["tmdbId"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid TMDB ID")
		return 0, false
	}
	return tmdbID, true
}

// Watchlist

func (app *App) getWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	entries, err := app.watchlistRepo.GetByUser(userID)
	if err != nil {
		log.Printf("Error getting watchlist: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch watchlist")
		return
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}

	respondJSON(w, http.StatusOK, entries)
}

func (app *App) addToWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var entry models.WatchlistEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if entry.TMDBID <= 0 || entry.Title == "" {
		respondMessage(w, http.StatusBadRequest, "tmdbId and title are required")
		return
	}
	entry.UserID = userID

	// Pre-check keeps the common case cheap; the unique constraint decides
	// races.
	exists, err := app.watchlistRepo.Exists(userID, entry.TMDBID)
	if err != nil {
		log.Printf("Error checking watchlist: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to update watchlist")
		return
	}
	if exists {
		respondMessage(w, http.StatusConflict, "Movie already in watchlist")
		return
	}

	if err := app.watchlistRepo.Add(&entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondMessage(w, http.StatusConflict, "Movie already in watchlist")
			return
		}
		log.Printf("Error adding watchlist entry: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to update watchlist")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

func (app *App) removeFromWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	tmdbID, ok := parseTMDBIDVar(w, r)
	if !ok {
		return
	}

	// Removing an entry that is not there is a no-op, not an error.
	if err := app.watchlistRepo.Remove(userID, tmdbID); err != nil {
		log.Printf("Error removing watchlist entry: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to update watchlist")
		return
	}

	respondMessage(w, http.StatusOK, "Removed from watchlist")
}

func (app *App) checkWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	tmdbID, ok := parseTMDBIDVar(w, r)
	if !ok {
		return
	}

	exists, err := app.watchlistRepo.Exists(userID, tmdbID)
	if err != nil {
		log.Printf("Error checking watchlist: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to check watchlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"inWatchlist": exists})
}

// Downloads

func (app *App) getDownloadsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	entries, err := app.downloadRepo.GetByUser(userID)
	if err != nil {
		log.Printf("Error getting downloads: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch downloads")
		return
	}
	if entries == nil {
		entries = []models.DownloadEntry{}
	}

	respondJSON(w, http.StatusOK, entries)
}

func (app *App) addDownloadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var entry models.DownloadEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if entry.TMDBID <= 0 || entry.Title == "" {
		respondMessage(w, http.StatusBadRequest, "tmdbId and title are required")
		return
	}
	entry.UserID = userID

	exists, err := app.downloadRepo.Exists(userID, entry.TMDBID)
	if err != nil {
		log.Printf("Error checking downloads: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to update downloads")
		return
	}
	if exists {
		respondMessage(w, http.StatusConflict, "Movie already in downloads")
		return
	}

	if err := app.downloadRepo.Add(&entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondMessage(w, http.StatusConflict, "Movie already in downloads")
			return
		}
		log.Printf("Error adding download entry: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to update downloads")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

func (app *App) removeDownloadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	tmdbID, ok := parseTMDBIDVar(w, r)
	if !ok {
		return
	}

	if err := app.downloadRepo.Remove(userID, tmdbID); err != nil {
		log.Printf("Error removing download entry: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to update downloads")
		return
	}

	respondMessage(w, http.StatusOK, "Removed from downloads")
}

func (app *App) checkDownloadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	tmdbID, ok := parseTMDBIDVar(w, r)
	if !ok {
		return
	}

	exists, err := app.downloadRepo.Exists(userID, tmdbID)
	if err != nil {
		log.Printf("Error checking downloads: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to check downloads")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"downloaded": exists})
}
