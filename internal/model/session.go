package model

// Stage is a node in the game session state machine
type Stage string

const (
	// StageStart is the scene-arrival stage shown right after generation
	StageStart Stage = "start"
	// StageClueHunt is the clue investigation stage
	StageClueHunt Stage = "clue_hunt"
	// StageInterview is the suspect interview stage
	StageInterview Stage = "interview"
	// StageGuess is the accusation stage
	StageGuess Stage = "guess"
	// StageComplete follows a submitted accusation, correct or not
	StageComplete Stage = "complete"
)

// GuessResult is the outcome of the session's accusation, if any
type GuessResult string

const (
	ResultNone      GuessResult = "none"
	ResultCorrect   GuessResult = "correct"
	ResultIncorrect GuessResult = "incorrect"
)

// GameSession is the transient per-login interaction context. It is never
// persisted; logging in rebuilds it from stored progress. Each session is
// keyed by its auth token, so concurrent sessions for different accounts
// coexist without shared state.
type GameSession struct {
	Token    string
	Username string
	Progress int // cached from the account record, bumped on a correct guess

	// Scenario is nil between levels ("logged in, no scenario")
	Scenario   *Scenario
	Stage      Stage
	Difficulty Difficulty

	// Generating guards against a second begin-level action while a
	// generation request is in flight
	Generating bool

	// AccusationSubmitted makes the first accusation authoritative;
	// later submissions in the same attempt are no-ops
	AccusationSubmitted bool
	Result              GuessResult

	// Last-viewed pointers, read-only with respect to the scenario
	LastClue      *LineupEntry
	LastInterview *Suspect
}

// Level is the level the session is currently attempting
func (gs *GameSession) Level() int {
	return gs.Progress + 1
}

// InGame reports whether the session holds an active scenario
func (gs *GameSession) InGame() bool {
	return gs.Scenario != nil
}

// CanTransition reports whether a player-driven stage change is legal.
// Guess is reachable only through clue hunt or interview, never straight
// from scene arrival.
func (gs *GameSession) CanTransition(to Stage) bool {
	if !gs.InGame() {
		return false
	}
	switch gs.Stage {
	case StageStart:
		return to == StageClueHunt || to == StageInterview
	case StageClueHunt:
		return to == StageInterview || to == StageGuess
	case StageInterview:
		return to == StageClueHunt || to == StageGuess
	default:
		return false
	}
}
