package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cluequest/cluequest-go/internal/api/apierr"
	"github.com/cluequest/cluequest-go/internal/api/middleware"
	"github.com/cluequest/cluequest-go/internal/api/request"
	"github.com/cluequest/cluequest-go/internal/api/response"
	"github.com/cluequest/cluequest-go/internal/model"
	"github.com/cluequest/cluequest-go/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	games *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(games *game.Controller) *GameHandler {
	return &GameHandler{
		games: games,
	}
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	snap, err := h.games.Snapshot(r.Context(), session.Token)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, snap)
}

// Begin handles POST /api/v1/game/begin
func (h *GameHandler) Begin(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.BeginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	difficulty, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	snap, err := h.games.BeginLevel(r.Context(), session.Token, difficulty)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, snap)
}

// EnterStage handles POST /api/v1/game/stage
func (h *GameHandler) EnterStage(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.StageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	var target model.Stage
	switch model.Stage(req.Stage) {
	case model.StageClueHunt, model.StageInterview, model.StageGuess:
		target = model.Stage(req.Stage)
	default:
		apierr.WriteError(w, apierr.NewInvalidRequestError("stage must be clue_hunt, interview or guess"))
		return
	}

	snap, err := h.games.EnterStage(r.Context(), session.Token, target)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, snap)
}

// SelectClue handles POST /api/v1/game/clues/{index}
func (h *GameHandler) SelectClue(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("clue index must be an integer"))
		return
	}

	snap, err := h.games.SelectClue(r.Context(), session.Token, index)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, snap)
}

// Interview handles POST /api/v1/game/interviews
func (h *GameHandler) Interview(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Suspect == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("suspect is required"))
		return
	}

	snap, err := h.games.SelectSuspect(r.Context(), session.Token, req.Suspect)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, snap)
}

// Accuse handles POST /api/v1/game/accuse
func (h *GameHandler) Accuse(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.AccuseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Suspect == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("suspect is required"))
		return
	}

	snap, err := h.games.SubmitAccusation(r.Context(), session.Token, req.Suspect)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, snap)
}

// Restart handles POST /api/v1/game/restart
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	snap, err := h.games.Restart(r.Context(), session.Token)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, snap)
}
