package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"irisweb/common"
	"irisweb/services"
)

func (h *Handler) UsersPage(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Re-render timestamps best-effort; legacy stored forms still display.
	view := *user
	view.CreatedAt = services.FormatWIB(view.CreatedAt)
	view.UpdatedAt = services.FormatWIB(view.UpdatedAt)

	history, err := h.predictions.RecentForUser(r.Context(), user.ID, 0)
	if err != nil {
		slog.Error("Failed to load history", "user_id", user.ID, "error", err)
	}

	h.render(w, h.usersTmpl, pageData{
		Title:   "Manajemen User",
		User:    &view,
		Flash:   h.sessions.PopFlash(w, r),
		History: history,
	})
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	password := r.FormValue("password")
	if strings.TrimSpace(password) == "" {
		h.flashAndRedirect(w, r, "Password baru wajib diisi.", "error", "/users")
		return
	}

	if err := h.users.UpdatePassword(r.Context(), user.ID, password); err != nil {
		slog.Error("Failed to update password", "user_id", user.ID, "error", err)
		h.flashAndRedirect(w, r, "Terjadi kesalahan. Silakan coba lagi.", "error", "/users")
		return
	}

	h.flashAndRedirect(w, r, "Password berhasil diubah.", "success", "/users")
}

func (h *Handler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		h.flashAndRedirect(w, r, "Username baru wajib diisi.", "error", "/users")
		return
	}

	if err := h.policy.AuthorizeUsernameChange(r.Context(), user, username); err != nil {
		switch {
		case errors.Is(err, services.ErrAdminRenameDenied):
			h.flashAndRedirect(w, r, "Username admin tidak bisa diubah.", "error", "/users")
		case errors.Is(err, services.ErrReservedUsername):
			h.flashAndRedirect(w, r, "Username tersebut tidak bisa digunakan.", "error", "/users")
		case errors.Is(err, common.ErrConflict):
			h.flashAndRedirect(w, r, "Username sudah dipakai.", "error", "/users")
		default:
			slog.Error("Failed to authorize username change", "user_id", user.ID, "error", err)
			h.flashAndRedirect(w, r, "Terjadi kesalahan. Silakan coba lagi.", "error", "/users")
		}
		return
	}

	if err := h.users.UpdateUsername(r.Context(), user.ID, username); err != nil {
		if errors.Is(err, common.ErrConflict) {
			h.flashAndRedirect(w, r, "Username sudah dipakai.", "error", "/users")
			return
		}
		slog.Error("Failed to update username", "user_id", user.ID, "error", err)
		h.flashAndRedirect(w, r, "Terjadi kesalahan. Silakan coba lagi.", "error", "/users")
		return
	}

	// Keep the live session's displayed name in sync with the rename.
	if err := h.sessions.SetUsername(w, r, username); err != nil {
		slog.Error("Failed to refresh session username", "user_id", user.ID, "error", err)
	}

	h.flashAndRedirect(w, r, "Username berhasil diubah.", "success", "/users")
}
