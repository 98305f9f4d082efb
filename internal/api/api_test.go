package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cluequest/cluequest-go/internal/api"
	"github.com/cluequest/cluequest-go/internal/api/response"
	"github.com/cluequest/cluequest-go/internal/dependencies/mocks"
	"github.com/cluequest/cluequest-go/internal/factory"
	"github.com/cluequest/cluequest-go/internal/services/game"
)

const manorScenario = `{
	"setting": "Harrowgate Manor",
	"description": "The collector was found in his locked gallery.",
	"victim": {"name": "Victor Harrow", "backstory": "An art collector with many enemies."},
	"suspects": {
		"Elena Voss": {"motive": "disputed will", "alibi": "in the conservatory"},
		"James Crane": "The estate solicitor, deep in gambling debt.",
		"Mabel Finch": "The housekeeper who found the body."
	},
	"clues": [
		"A gallery key cut recently, found in the rose bed.",
		"Ledger pages showing payments to J.C.",
		"A muddy footprint too large for the housekeeper."
	],
	"red_herrings": [
		"Elena's torn glove by the conservatory door."
	],
	"culprit": "James Crane",
	"explanation": "Crane had a copy of the key cut to fake the locked room."
}`

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	gen     *mocks.MockGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use the production factory with real
	// random/clock and only the generator scripted
	gen := mocks.NewMockGenerator()
	app, err := factory.New(factory.Config{Generator: gen})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		GameController: app.GameController,
	})

	return &testServer{
		handler: router,
		gen:     gen,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// logIn signs up and logs in a player, returning their session token
func (ts *testServer) logIn(t *testing.T, username, password string) string {
	t.Helper()

	body := map[string]string{"username": username, "password": password}
	rr := ts.request(http.MethodPost, "/api/v1/accounts/signup", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/accounts/login", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionToken)
	return resp.SessionToken
}

// beginLevel drives an authenticated session into an active level
func (ts *testServer) beginLevel(t *testing.T, token string) game.Snapshot {
	t.Helper()

	ts.gen.QueueResponse(manorScenario)
	rr := ts.request(http.MethodPost, "/api/v1/game/begin", map[string]string{}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	return snap
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestSignUpAndLogIn(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/accounts/signup", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/accounts/login", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestSignUpDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/accounts/signup", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/accounts/signup", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_TAKEN")
}

func TestLogInErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.logIn(t, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/accounts/login",
		map[string]string{"username": "nobody", "password": "whatever"}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "NO_SUCH_USER")

	rr = ts.request(http.MethodPost, "/api/v1/accounts/login",
		map[string]string{"username": "alice", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "WRONG_PASSWORD")
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/game", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/game", nil, "sess_bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.logIn(t, "alice", "secret123")

	rr := ts.request(http.MethodGet, "/api/v1/accounts/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.AccountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, 0, resp.Progress)
	assert.Equal(t, 1, resp.Level)
}

func TestBeginLevel(t *testing.T) {
	ts := newTestServer(t)
	token := ts.logIn(t, "alice", "secret123")

	snap := ts.beginLevel(t, token)
	assert.True(t, snap.InGame)
	assert.Equal(t, "start", string(snap.Stage))
	assert.Equal(t, "Harrowgate Manor", snap.Setting)
	assert.Len(t, snap.Suspects, 3)
	assert.Len(t, snap.ClueLabels, 4)
	assert.Empty(t, snap.Culprit)
}

func TestBeginLevelInvalidDifficulty(t *testing.T) {
	ts := newTestServer(t)
	token := ts.logIn(t, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/game/begin",
		map[string]string{"difficulty": "impossible"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_DIFFICULTY")
}

func TestGenerationFailure(t *testing.T) {
	ts := newTestServer(t)
	token := ts.logIn(t, "alice", "secret123")

	ts.gen.QueueResponse("not a mystery at all")
	rr := ts.request(http.MethodPost, "/api/v1/game/begin", map[string]string{}, token)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "MALFORMED_SCENARIO")
}

func TestFullInvestigationFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.logIn(t, "alice", "secret123")
	ts.beginLevel(t, token)

	// Move to the clue hunt and reveal a clue
	rr := ts.request(http.MethodPost, "/api/v1/game/stage",
		map[string]string{"stage": "clue_hunt"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/clues/0", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, "Clue 1", snap.LastClue.Label)

	// Interview a suspect
	rr = ts.request(http.MethodPost, "/api/v1/game/stage",
		map[string]string{"stage": "interview"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/interviews",
		map[string]string{"suspect": "James Crane"}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, "James Crane", snap.LastInterview.Name)

	// Accuse the culprit
	rr = ts.request(http.MethodPost, "/api/v1/game/stage",
		map[string]string{"stage": "guess"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/accuse",
		map[string]string{"suspect": "James Crane"}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, "correct", string(snap.Result))
	assert.Equal(t, 1, snap.Progress)
	assert.Equal(t, "James Crane", snap.Culprit)
	assert.NotEmpty(t, snap.Explanation)

	// Progress shows up on the account
	rr = ts.request(http.MethodGet, "/api/v1/accounts/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var me response.AccountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, 1, me.Progress)
	assert.Equal(t, 2, me.Level)
}

func TestAccuseTwiceIsNoOp(t *testing.T) {
	ts := newTestServer(t)
	token := ts.logIn(t, "alice", "secret123")
	ts.beginLevel(t, token)

	for _, stage := range []string{"clue_hunt", "guess"} {
		rr := ts.request(http.MethodPost, "/api/v1/game/stage",
			map[string]string{"stage": stage}, token)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := ts.request(http.MethodPost, "/api/v1/game/accuse",
		map[string]string{"suspect": "James Crane"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	// The second accusation doesn't change the outcome or double-commit
	rr = ts.request(http.MethodPost, "/api/v1/game/accuse",
		map[string]string{"suspect": "Mabel Finch"}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, "correct", string(snap.Result))
	assert.Equal(t, 1, snap.Progress)
}

func TestInvalidStageJump(t *testing.T) {
	ts := newTestServer(t)
	token := ts.logIn(t, "alice", "secret123")
	ts.beginLevel(t, token)

	// Straight from scene arrival to accusation is not allowed
	rr := ts.request(http.MethodPost, "/api/v1/game/stage",
		map[string]string{"stage": "guess"}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_STAGE")
}

func TestRestart(t *testing.T) {
	ts := newTestServer(t)
	token := ts.logIn(t, "alice", "secret123")
	ts.beginLevel(t, token)

	for _, stage := range []string{"clue_hunt", "guess"} {
		rr := ts.request(http.MethodPost, "/api/v1/game/stage",
			map[string]string{"stage": stage}, token)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := ts.request(http.MethodPost, "/api/v1/game/accuse",
		map[string]string{"suspect": "James Crane"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	ts.gen.QueueResponse(manorScenario)
	rr = ts.request(http.MethodPost, "/api/v1/game/restart", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.Level)
	assert.Equal(t, "start", string(snap.Stage))
	assert.Equal(t, "none", string(snap.Result))
}

func TestLogOutEndsSession(t *testing.T) {
	ts := newTestServer(t)
	token := ts.logIn(t, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/accounts/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/game", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
