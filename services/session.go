package services

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "streamvault-session"

// SessionService wraps the cookie session store used for user authentication
type SessionService struct {
	store *sessions.CookieStore
}

// NewSessionService creates a session service backed by a signed cookie store
func NewSessionService(secret string, secure bool) *SessionService {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionService{store: store}
}

// CurrentUserID returns the signed-in user's id, or false when the request
// carries no valid session
func (s *SessionService) CurrentUserID(r *http.Request) (string, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return "", false
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// SignIn records the user id in a fresh session cookie
func (s *SessionService) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values["user_id"] = userID
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SignOut clears the session cookie
func (s *SessionService) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
