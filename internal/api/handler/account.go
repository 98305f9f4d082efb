package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cluequest/cluequest-go/internal/api/apierr"
	"github.com/cluequest/cluequest-go/internal/api/middleware"
	"github.com/cluequest/cluequest-go/internal/api/request"
	"github.com/cluequest/cluequest-go/internal/api/response"
	"github.com/cluequest/cluequest-go/internal/services/account"
	"github.com/cluequest/cluequest-go/internal/services/game"
)

// AccountHandler handles account-related endpoints
type AccountHandler struct {
	accounts *account.Service
	games    *game.Controller
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *account.Service, games *game.Controller) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		games:    games,
	}
}

// SignUp handles POST /api/v1/accounts/signup.
// Creating an account does not log the player in; a separate login follows.
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}

	if err := h.accounts.SignUp(r.Context(), req.Username, req.Password); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AccountResponse{
		Username: req.Username,
		Progress: 0,
		Level:    1,
	})
}

// LogIn handles POST /api/v1/accounts/login
func (h *AccountHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var req request.LogInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.accounts.LogIn(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if _, err := h.games.StartSession(r.Context(), session.Token, session.Username); err != nil {
		h.accounts.LogOut(session.Token)
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// LogOut handles POST /api/v1/accounts/logout
func (h *AccountHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.games.EndSession(session.Token)
	h.accounts.LogOut(session.Token)
	response.NoContent(w)
}

// GetMe handles GET /api/v1/accounts/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	progress, err := h.accounts.LoadProgress(r.Context(), session.Username)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccountResponse{
		Username: session.Username,
		Progress: progress,
		Level:    progress + 1,
	})
}
