package handler

import (
	"context"
	"net/http"
	"time"

	"inotebook-server/internal/middleware"
	"inotebook-server/pkg/response"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) (bool, error)
}

// RouterConfig holds everything the route table needs. Deduper and
// RateLimiter are optional.
type RouterConfig struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Notes       *NoteHandler
	Tokens      middleware.TokenValidator
	Deduper     middleware.Deduper
	RateLimiter *middleware.RateLimiter
	Health      HealthChecker
}

func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimiter))
	}

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/createuser", cfg.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/login", cfg.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", cfg.Auth.Refresh).Methods("POST")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.Tokens))

	protected.HandleFunc("/auth/getuser", cfg.Users.GetMe).Methods("GET")

	protected.HandleFunc("/note/getallnotes", cfg.Notes.List).Methods("GET")
	protected.Handle("/note/addnote", middleware.IdempotencyMiddleware(cfg.Deduper)(http.HandlerFunc(cfg.Notes.Create))).Methods("POST")
	protected.HandleFunc("/note/updatenote/{id}", cfg.Notes.Update).Methods("PUT")
	protected.HandleFunc("/note/deletenote/{id}", cfg.Notes.Delete).Methods("DELETE")
	protected.HandleFunc("/note/deletenotebytitle", cfg.Notes.DeleteByTitle).Methods("DELETE")
	protected.HandleFunc("/note/deletenotebytag", cfg.Notes.DeleteByTag).Methods("DELETE")

	if cfg.Health != nil {
		r.HandleFunc("/health", healthHandler(cfg.Health)).Methods("GET")
	}
	r.HandleFunc("/", rootHandler).Methods("GET")

	return r
}

func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		up, err := checker.Ping(ctx)
		if err != nil || !up {
			log.WithError(err).Warn("health check failed")
			response.ServiceUnavailable(w, "database unavailable")
			return
		}

		response.Success(w, map[string]string{"status": "healthy", "service": "inotebook-server"})
	}
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"message": "iNotebook Server API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"/api/auth/createuser":        "POST",
			"/api/auth/login":             "POST",
			"/api/auth/refresh":           "POST",
			"/api/auth/getuser":           "GET (protected)",
			"/api/note/getallnotes":       "GET (protected)",
			"/api/note/addnote":           "POST (protected)",
			"/api/note/updatenote/{id}":   "PUT (protected)",
			"/api/note/deletenote/{id}":   "DELETE (protected)",
			"/api/note/deletenotebytitle": "DELETE (protected)",
			"/api/note/deletenotebytag":   "DELETE (protected)",
		},
	})
}
