// Package game owns the session state machine: stage progression, the
// active scenario, accusation handling and progress commitment. Every
// action takes an explicit session token, so independent sessions coexist
// without shared mutable state.
package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cluequest/cluequest-go/internal/model"
	"github.com/cluequest/cluequest-go/internal/services/account"
	"github.com/cluequest/cluequest-go/internal/services/generator"
	"github.com/cluequest/cluequest-go/internal/services/scenario"
)

// Controller manages game sessions keyed by auth token
type Controller struct {
	accounts  *account.Service
	generator *generator.Service
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*model.GameSession
}

// NewController creates a new game Controller
func NewController(accounts *account.Service, gen *generator.Service, logger *slog.Logger) *Controller {
	return &Controller{
		accounts:  accounts,
		generator: gen,
		logger:    logger,
		sessions:  make(map[string]*model.GameSession),
	}
}

// StartSession builds a fresh game session for a just-logged-in player,
// loading their stored progress. Any previous session under the same token
// is discarded.
func (c *Controller) StartSession(ctx context.Context, token, username string) (*Snapshot, error) {
	progress, err := c.accounts.LoadProgress(ctx, username)
	if err != nil {
		return nil, err
	}

	gs := &model.GameSession{
		Token:    token,
		Username: username,
		Progress: progress,
		Result:   model.ResultNone,
	}

	c.mu.Lock()
	c.sessions[token] = gs
	snap := c.snapshotLocked(gs)
	c.mu.Unlock()

	c.logger.Info("game session started",
		slog.String("username", username),
		slog.Int("level", gs.Level()),
	)
	return snap, nil
}

// EndSession discards a session entirely (log out). Unknown tokens are
// ignored.
func (c *Controller) EndSession(token string) {
	c.mu.Lock()
	delete(c.sessions, token)
	c.mu.Unlock()
}

// Snapshot returns the current render model for a session
func (c *Controller) Snapshot(ctx context.Context, token string) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gs, ok := c.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return c.snapshotLocked(gs), nil
}

// BeginLevel generates a scenario for the session's current level and
// installs it at the scene-arrival stage. At most one generation request
// may be in flight per session, and a second begin while a level is active
// is rejected. On any failure the session keeps its pre-call state and the
// player can retry.
func (c *Controller) BeginLevel(ctx context.Context, token string, difficulty model.Difficulty) (*Snapshot, error) {
	c.mu.Lock()
	gs, ok := c.sessions[token]
	if !ok {
		c.mu.Unlock()
		return nil, model.ErrSessionNotFound
	}
	if gs.Generating {
		c.mu.Unlock()
		return nil, model.ErrGenerationInFlight
	}
	if gs.InGame() {
		c.mu.Unlock()
		return nil, model.ErrLevelInProgress
	}
	gs.Generating = true
	gs.Difficulty = difficulty
	level := gs.Level()
	c.mu.Unlock()

	sc, err := c.generate(ctx, level, difficulty)

	c.mu.Lock()
	defer c.mu.Unlock()

	// The player may have logged out while generation was in flight
	gs, ok = c.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	gs.Generating = false

	if err != nil {
		return nil, err
	}

	gs.Scenario = sc
	gs.Stage = model.StageStart
	gs.AccusationSubmitted = false
	gs.Result = model.ResultNone
	gs.LastClue = nil
	gs.LastInterview = nil

	c.logger.Info("level started",
		slog.String("username", gs.Username),
		slog.Int("level", level),
		slog.String("difficulty", string(difficulty)),
	)
	return c.snapshotLocked(gs), nil
}

// generate runs the adapter and parser outside the session lock
func (c *Controller) generate(ctx context.Context, level int, difficulty model.Difficulty) (*model.Scenario, error) {
	raw, params, err := c.generator.RequestScenario(ctx, level, difficulty)
	if err != nil {
		return nil, err
	}

	sc, err := scenario.Parse(raw)
	if err != nil {
		c.logger.Warn("generated scenario rejected",
			slog.Int("level", level),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	// Count drift is playable; note it and move on
	if !scenario.CountsMatch(sc, params.NumClues, params.NumRedHerrings) {
		c.logger.Warn("scenario counts differ from request",
			slog.Int("level", level),
			slog.Int("want_clues", params.NumClues),
			slog.Int("got_clues", len(sc.Clues)),
			slog.Int("want_red_herrings", params.NumRedHerrings),
			slog.Int("got_red_herrings", len(sc.RedHerrings)),
		)
	}

	return sc, nil
}

// EnterStage performs a player-driven stage change (look for clues, talk to
// suspects, make an accusation). Illegal moves, including jumping straight
// from scene arrival to the accusation, are rejected.
func (c *Controller) EnterStage(ctx context.Context, token string, target model.Stage) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gs, ok := c.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	if !gs.InGame() {
		return nil, model.ErrNoActiveScenario
	}
	if !gs.CanTransition(target) {
		return nil, model.ErrInvalidTransition
	}

	gs.Stage = target
	return c.snapshotLocked(gs), nil
}

// SelectClue reveals one entry from the clue lineup. Read-only against the
// scenario apart from the last-viewed pointer.
func (c *Controller) SelectClue(ctx context.Context, token string, index int) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gs, ok := c.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	if !gs.InGame() {
		return nil, model.ErrNoActiveScenario
	}
	if gs.Stage != model.StageClueHunt {
		return nil, model.ErrInvalidTransition
	}

	lineup := gs.Scenario.Lineup()
	if index < 0 || index >= len(lineup) {
		return nil, model.ErrClueNotFound
	}

	entry := lineup[index]
	gs.LastClue = &entry
	return c.snapshotLocked(gs), nil
}

// SelectSuspect interrogates a suspect by full name (case-insensitive).
// Read-only against the scenario apart from the last-viewed pointer.
func (c *Controller) SelectSuspect(ctx context.Context, token, name string) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gs, ok := c.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	if !gs.InGame() {
		return nil, model.ErrNoActiveScenario
	}
	if gs.Stage != model.StageInterview {
		return nil, model.ErrInvalidTransition
	}

	suspect, found := gs.Scenario.FindSuspect(name)
	if !found {
		return nil, model.ErrSuspectNotFound
	}

	gs.LastInterview = &suspect
	return c.snapshotLocked(gs), nil
}

// SubmitAccusation resolves the accusation stage. The first submission is
// authoritative: a correct full-name match (case-insensitive, trimmed)
// commits progress exactly once; anything else completes the level without
// advancing. Submitting again after completion is a no-op that returns the
// existing outcome, which is what guards progress against double-clicks.
func (c *Controller) SubmitAccusation(ctx context.Context, token, suspectName string) (*Snapshot, error) {
	c.mu.Lock()
	gs, ok := c.sessions[token]
	if !ok {
		c.mu.Unlock()
		return nil, model.ErrSessionNotFound
	}
	if !gs.InGame() {
		c.mu.Unlock()
		return nil, model.ErrNoActiveScenario
	}

	if gs.AccusationSubmitted {
		snap := c.snapshotLocked(gs)
		c.mu.Unlock()
		return snap, nil
	}
	if gs.Stage != model.StageGuess {
		c.mu.Unlock()
		return nil, model.ErrInvalidTransition
	}

	gs.AccusationSubmitted = true
	gs.Stage = model.StageComplete

	correct := gs.Scenario.IsCulprit(suspectName)
	username := gs.Username
	newProgress := gs.Progress + 1
	if correct {
		gs.Result = model.ResultCorrect
		// Committed before the lock drops so a restart racing the save
		// already sees the advanced level
		gs.Progress = newProgress
	} else {
		gs.Result = model.ResultIncorrect
	}
	c.mu.Unlock()

	if correct {
		if err := c.accounts.SaveProgress(ctx, username, newProgress); err != nil {
			// The outcome stands for this attempt; only persistence failed
			c.logger.Error("failed to save progress",
				slog.String("username", username),
				slog.Int("progress", newProgress),
				slog.String("error", err.Error()),
			)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	gs, ok = c.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}

	c.logger.Info("accusation resolved",
		slog.String("username", gs.Username),
		slog.String("result", string(gs.Result)),
		slog.Int("progress", gs.Progress),
	)
	return c.snapshotLocked(gs), nil
}

// Restart discards the completed attempt and immediately begins generation
// for the next level (or the same one, after an incorrect accusation),
// keeping the session's difficulty.
func (c *Controller) Restart(ctx context.Context, token string) (*Snapshot, error) {
	c.mu.Lock()
	gs, ok := c.sessions[token]
	if !ok {
		c.mu.Unlock()
		return nil, model.ErrSessionNotFound
	}
	if !gs.InGame() {
		c.mu.Unlock()
		return nil, model.ErrNoActiveScenario
	}
	if gs.Stage != model.StageComplete {
		c.mu.Unlock()
		return nil, model.ErrInvalidTransition
	}

	difficulty := gs.Difficulty
	gs.Scenario = nil
	gs.Stage = ""
	gs.AccusationSubmitted = false
	gs.Result = model.ResultNone
	gs.LastClue = nil
	gs.LastInterview = nil
	c.mu.Unlock()

	return c.BeginLevel(ctx, token, difficulty)
}
