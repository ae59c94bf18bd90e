package main

import (
	"errors"
	"log"
	"net/http"

	"streamvault/services"
)

func (app *App) streamSearchHandler(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		respondMessage(w, http.StatusBadRequest, "keyword is required")
		return
	}
	mediaType := r.URL.Query().Get("type")

	body, err := app.streamService.Search(keyword, mediaType)
	if err != nil {
		if errors.Is(err, services.ErrUpstream) {
			log.Printf("Stream search upstream error: %v", err)
			respondMessage(w, http.StatusBadGateway, "Stream provider unavailable")
			return
		}
		log.Printf("Stream search error: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to search streams")
		return
	}

	writeRawJSON(w, body)
}

func (app *App) streamLinksHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondMessage(w, http.StatusBadRequest, "id is required")
		return
	}
	mediaType := r.URL.Query().Get("type")

	body, err := app.streamService.Links(id, mediaType)
	if err != nil {
		if errors.Is(err, services.ErrUpstream) {
			log.Printf("Stream links upstream error: %v", err)
			respondMessage(w, http.StatusBadGateway, "Stream provider unavailable")
			return
		}
		log.Printf("Stream links error: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch stream links")
		return
	}

	writeRawJSON(w, body)
}

// writeRawJSON passes an upstream JSON body through verbatim
func writeRawJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
