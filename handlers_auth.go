package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"streamvault/repository"
	"streamvault/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *App) registerHandler(w http.ResponseWriter, r *http.Request) {
	if !app.authLimiter.allow(getClientIP(r)) {
		respondMessage(w, http.StatusTooManyRequests, "Too many attempts, try again later")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs := make(map[string]string)
	if strings.TrimSpace(req.Username) == "" {
		errs["username"] = "username is required"
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		errs["email"] = "a valid email is required"
	}
	if len(req.Password) < 6 {
		errs["password"] = "password must be at least 6 characters"
	}
	if len(errs) > 0 {
		respondValidationErrors(w, "Invalid registration data", errs)
		return
	}

	user, err := app.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondMessage(w, http.StatusConflict, "Username or email already taken")
			return
		}
		log.Printf("Error registering user: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	if err := app.sessions.SignIn(w, r, user.ID); err != nil {
		log.Printf("Error creating session: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (app *App) loginHandler(w http.ResponseWriter, r *http.Request) {
	if !app.authLimiter.allow(getClientIP(r)) {
		respondMessage(w, http.StatusTooManyRequests, "Too many attempts, try again later")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := app.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Error authenticating user: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if err := app.sessions.SignIn(w, r, user.ID); err != nil {
		log.Printf("Error creating session: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (app *App) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.sessions.SignOut(w, r); err != nil {
		log.Printf("Error clearing session: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	respondMessage(w, http.StatusOK, "Logged out")
}

func (app *App) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	user, err := app.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Stale session for a deleted account.
			respondMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		log.Printf("Error loading user: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
