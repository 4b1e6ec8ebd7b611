package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"irisweb/config"
	"irisweb/database"
	"irisweb/handlers"
	"irisweb/logger"
	"irisweb/middleware"
	"irisweb/services"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.Debug)

	slog.Info("Initializing irisweb components")

	db, dialect, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// An inconsistent schema must never serve traffic.
	if err := database.RunMigrations(db, dialect); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	users := services.NewUserRepository(db)
	predictions := services.NewPredictionRepository(db)
	sessions := services.NewSessionManager(cfg)
	policy := services.NewPolicy(users, cfg.AdminUsername)
	auth := services.NewAuthService(users, policy)
	classifier := services.NewIrisClassifier()

	if err := users.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		slog.Error("Failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	h, err := handlers.New(users, predictions, sessions, auth, policy, classifier)
	if err != nil {
		slog.Error("Failed to initialize handlers", "error", err)
		os.Exit(1)
	}

	requireAuth := middleware.RequireAuth(sessions, users)

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("/login", h.Login)
	mux.HandleFunc("/register", h.Register)
	mux.HandleFunc("/logout", h.Logout)
	mux.HandleFunc("/predict", h.PredictAPI)

	// Protected routes
	mux.Handle("/prediksi", requireAuth(http.HandlerFunc(h.Predict)))
	mux.Handle("/users", requireAuth(http.HandlerFunc(h.UsersPage)))
	mux.Handle("/users/update-password", requireAuth(http.HandlerFunc(h.UpdatePassword)))
	mux.Handle("/users/update-username", requireAuth(http.HandlerFunc(h.UpdateUsername)))

	// Root redirect
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if sessions.Current(r) != nil {
			http.Redirect(w, r, "/prediksi", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	addr := ":" + cfg.ServerPort
	slog.Info("irisweb is starting", "addr", addr, "environment", cfg.Environment, "database", string(dialect))

	if err := http.ListenAndServe(addr, middleware.Logging(mux)); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
