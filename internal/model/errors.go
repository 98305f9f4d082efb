package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already taken")

	// Scenario errors
	ErrMalformedScenario = errors.New("malformed scenario")
	ErrCulpritMismatch   = errors.New("culprit does not match any suspect")
	ErrNoActiveScenario  = errors.New("no active scenario")
	ErrClueNotFound      = errors.New("clue not found")
	ErrSuspectNotFound   = errors.New("suspect not found")

	// Session / stage errors
	ErrSessionNotFound    = errors.New("game session not found")
	ErrInvalidTransition  = errors.New("invalid stage transition")
	ErrLevelInProgress    = errors.New("a level is already in progress")
	ErrGenerationInFlight = errors.New("scenario generation already in flight")
	ErrInvalidDifficulty  = errors.New("invalid difficulty")

	// Progress errors
	ErrProgressRegression = errors.New("progress may not decrease")
)
