package services

import (
	"net/http"

	"github.com/gorilla/sessions"

	"irisweb/config"
	"irisweb/models"
)

const sessionName = "irisweb-session"

// SessionManager binds an opaque signed cookie to an authenticated user and
// carries the one-slot flash message. The payload is tamper-evident: a
// cookie that fails the integrity check reads as no session at all.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(cfg *config.Config) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	secure := false
	if cfg.Environment == "production" {
		secure = true
	}

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store}
}

// Start establishes a session for the user, replacing any prior binding for
// this requester.
func (m *SessionManager) Start(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values = map[any]any{
		"user_id":  user.ID,
		"username": user.Username,
	}
	return session.Save(r, w)
}

// Current returns the session's user binding, or nil when the requester has
// no session or the cookie failed verification.
func (m *SessionManager) Current(r *http.Request) *models.SessionUser {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return nil
	}

	userID, ok := session.Values["user_id"].(int64)
	if !ok {
		return nil
	}
	username, _ := session.Values["username"].(string)

	return &models.SessionUser{UserID: userID, Username: username}
}

// End clears all session state for the requester.
func (m *SessionManager) End(w http.ResponseWriter, r *http.Request) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return
	}
	session.Values = make(map[any]any)
	session.Options.MaxAge = -1
	_ = session.Save(r, w)
}

// SetUsername updates the displayed username on the live session after a
// rename, without touching the rest of the binding.
func (m *SessionManager) SetUsername(w http.ResponseWriter, r *http.Request, username string) error {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Values["username"] = username
	return session.Save(r, w)
}

// SetFlash stores the one-slot notification. A second call before the flash
// is popped overwrites the first.
func (m *SessionManager) SetFlash(w http.ResponseWriter, r *http.Request, message, category string) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values["flash_message"] = message
	session.Values["flash_category"] = category
	return session.Save(r, w)
}

// PopFlash reads and clears the flash in one step, so at most one flash
// survives between requests.
func (m *SessionManager) PopFlash(w http.ResponseWriter, r *http.Request) *models.Flash {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return nil
	}

	message, ok := session.Values["flash_message"].(string)
	if !ok {
		return nil
	}
	category, _ := session.Values["flash_category"].(string)

	delete(session.Values, "flash_message")
	delete(session.Values, "flash_category")
	_ = session.Save(r, w)

	return &models.Flash{Message: message, Category: category}
}
