package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"irisweb/common"
	"irisweb/services"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.currentUser(r) != nil {
		http.Redirect(w, r, "/prediksi", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, h.loginTmpl, pageData{
			Title: "Login",
			Flash: h.sessions.PopFlash(w, r),
		})
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		slog.Warn("Login failed", "username", username)
		h.flashAndRedirect(w, r, "Username atau password salah.", "error", "/login")
		return
	}

	if err := h.sessions.Start(w, r, user); err != nil {
		slog.Error("Failed to start session", "username", username, "error", err)
		h.flashAndRedirect(w, r, "Terjadi kesalahan. Silakan coba lagi.", "error", "/login")
		return
	}

	slog.Info("User logged in", "username", username, "user_id", user.ID)
	http.Redirect(w, r, "/prediksi", http.StatusSeeOther)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if h.currentUser(r) != nil {
		http.Redirect(w, r, "/prediksi", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, h.registerTmpl, pageData{
			Title: "Buat Akun",
			Flash: h.sessions.PopFlash(w, r),
		})
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	passwordConfirm := r.FormValue("password_confirm")

	if username == "" || strings.TrimSpace(password) == "" || strings.TrimSpace(passwordConfirm) == "" {
		h.flashAndRedirect(w, r, "Username dan password wajib diisi.", "error", "/register")
		return
	}
	if password != passwordConfirm {
		h.flashAndRedirect(w, r, "Password tidak cocok. Silakan ulangi.", "error", "/register")
		return
	}

	user, err := h.auth.Register(r.Context(), username, password, passwordConfirm)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservedUsername):
			h.flashAndRedirect(w, r, "Username tersebut tidak bisa digunakan.", "error", "/register")
		case errors.Is(err, common.ErrConflict):
			h.flashAndRedirect(w, r, "Username sudah dipakai.", "error", "/register")
		default:
			slog.Error("Registration failed", "username", username, "error", err)
			h.flashAndRedirect(w, r, "Terjadi kesalahan. Silakan coba lagi.", "error", "/register")
		}
		return
	}

	slog.Info("User registered", "username", username, "user_id", user.ID)

	// Automatically log in after registration
	if err := h.sessions.Start(w, r, user); err != nil {
		slog.Error("Failed to start session", "username", username, "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/prediksi", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
