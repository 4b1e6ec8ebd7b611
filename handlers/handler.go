package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"irisweb/common"
	"irisweb/models"
	"irisweb/services"
	"irisweb/templates"
)

// Handler carries every collaborator the HTTP layer needs. Nothing is
// reached through package globals, so tests can swap in doubles.
type Handler struct {
	users       *services.UserRepository
	predictions *services.PredictionRepository
	sessions    *services.SessionManager
	auth        *services.AuthService
	policy      *services.Policy
	classifier  services.Classifier

	loginTmpl    *template.Template
	registerTmpl *template.Template
	predictTmpl  *template.Template
	usersTmpl    *template.Template
}

func New(
	users *services.UserRepository,
	predictions *services.PredictionRepository,
	sessions *services.SessionManager,
	auth *services.AuthService,
	policy *services.Policy,
	classifier services.Classifier,
) (*Handler, error) {
	h := &Handler{
		users:       users,
		predictions: predictions,
		sessions:    sessions,
		auth:        auth,
		policy:      policy,
		classifier:  classifier,
	}

	var err error
	if h.loginTmpl, err = parsePage("login.html"); err != nil {
		return nil, err
	}
	if h.registerTmpl, err = parsePage("register.html"); err != nil {
		return nil, err
	}
	if h.predictTmpl, err = parsePage("predict.html"); err != nil {
		return nil, err
	}
	if h.usersTmpl, err = parsePage("users.html"); err != nil {
		return nil, err
	}

	return h, nil
}

func parsePage(page string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templates.FS, "layouts/base.html", "pages/"+page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
	}
	return tmpl, nil
}

type predictionResult struct {
	PredictionID int
	Label        string
}

type pageData struct {
	Title   string
	User    *models.User
	Flash   *models.Flash
	History []models.PredictionRecord
	Result  *predictionResult
	Values  map[string]string
}

func (h *Handler) render(w http.ResponseWriter, tmpl *template.Template, data pageData) {
	if data.Values == nil {
		data.Values = map[string]string{}
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering template", "title", data.Title, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// currentUser resolves the session binding to a user row. A missing or
// malformed session and a deleted user both read as anonymous.
func (h *Handler) currentUser(r *http.Request) *models.User {
	current := h.sessions.Current(r)
	if current == nil {
		return nil
	}

	user, err := h.users.FindByID(r.Context(), current.UserID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			slog.Error("Failed to load session user", "user_id", current.UserID, "error", err)
		}
		return nil
	}
	return user
}

// flashAndRedirect is the uniform failure path: every user-facing error
// becomes a flash message plus a redirect, never a fatal response.
func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, message, category, target string) {
	if err := h.sessions.SetFlash(w, r, message, category); err != nil {
		slog.Error("Failed to set flash", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
