package middleware

import (
	"log/slog"
	"net/http"

	"irisweb/services"
)

func redirectToLogin(w http.ResponseWriter, r *http.Request, reason string) {
	slog.Debug("Redirecting to login", "reason", reason, "path", r.URL.Path)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RequireAuth guards a handler behind a valid session whose user still
// exists. A malformed or unverifiable cookie is treated as no session.
func RequireAuth(sessions *services.SessionManager, users *services.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current := sessions.Current(r)
			if current == nil {
				redirectToLogin(w, r, "user not authenticated")
				return
			}

			if _, err := users.FindByID(r.Context(), current.UserID); err != nil {
				redirectToLogin(w, r, "user not found in database")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
