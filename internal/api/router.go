package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cluequest/cluequest-go/internal/api/handler"
	"github.com/cluequest/cluequest-go/internal/api/middleware"
	"github.com/cluequest/cluequest-go/internal/services/account"
	"github.com/cluequest/cluequest-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AccountService, cfg.GameController)
	gameHandler := handler.NewGameHandler(cfg.GameController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AccountService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account routes (no auth required for signup/login)
	api.HandleFunc("/accounts/signup", accountHandler.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/accounts/login", accountHandler.LogIn).Methods(http.MethodPost)

	// Protected account routes
	accounts := api.PathPrefix("/accounts").Subrouter()
	accounts.Use(authMiddleware)
	accounts.HandleFunc("/logout", accountHandler.LogOut).Methods(http.MethodPost)
	accounts.HandleFunc("/me", accountHandler.GetMe).Methods(http.MethodGet)

	// Game routes (all require auth)
	games := api.PathPrefix("/game").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/begin", gameHandler.Begin).Methods(http.MethodPost)
	games.HandleFunc("/stage", gameHandler.EnterStage).Methods(http.MethodPost)
	games.HandleFunc("/clues/{index}", gameHandler.SelectClue).Methods(http.MethodPost)
	games.HandleFunc("/interviews", gameHandler.Interview).Methods(http.MethodPost)
	games.HandleFunc("/accuse", gameHandler.Accuse).Methods(http.MethodPost)
	games.HandleFunc("/restart", gameHandler.Restart).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
