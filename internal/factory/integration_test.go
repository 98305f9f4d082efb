package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cluequest/cluequest-go/internal/model"
)

const lighthouseScenario = `{
	"setting": "Gullwick Lighthouse",
	"description": "The keeper was found at the foot of the spiral stairs.",
	"victim": {"name": "Ruth Calloway", "backstory": "The lighthouse keeper of thirty years."},
	"suspects": {
		"Dennis Pike": {"motive": "Ruth blocked his marina development", "alibi": "says he was on the mainland"},
		"Sara Holt": "Ruth's apprentice, recently passed over for the post.",
		"Arthur Finch": "A birdwatcher camped on the headland."
	},
	"clues": [
		"Mud on the gallery rail matching the headland path.",
		"A ferry ticket stub dated the night of the death.",
		"The lamp log ends mid-sentence."
	],
	"red_herrings": [
		"Sara's resignation letter, unsent."
	],
	"culprit": "Dennis Pike",
	"explanation": "The ferry stub proves Dennis never left the island."
}`

type IntegrationSuite struct {
	suite.Suite
	ctx context.Context
	app *TestApp
}

func (s *IntegrationSuite) SetupTest() {
	s.ctx = context.Background()
	s.app = NewTestApp()
}

// logIn signs up (if needed) and logs a player in, returning the token
func (s *IntegrationSuite) logIn(username, password, token string) string {
	err := s.app.AccountService.SignUp(s.ctx, username, password)
	if err != nil {
		s.Require().ErrorIs(err, model.ErrUsernameTaken)
	}

	s.app.MockRandom.QueueString(token)
	sess, err := s.app.AccountService.LogIn(s.ctx, username, password)
	s.Require().NoError(err)

	_, err = s.app.GameController.StartSession(s.ctx, sess.Token, username)
	s.Require().NoError(err)
	return sess.Token
}

func (s *IntegrationSuite) TestFullPlaythrough() {
	token := s.logIn("dalgliesh", "scotlandyard", "tok-dalgliesh")
	s.Equal("sess_tok-dalgliesh", token)

	s.app.MockGenerator.QueueResponse(lighthouseScenario)
	snap, err := s.app.GameController.BeginLevel(s.ctx, token, model.DifficultyHard)
	s.Require().NoError(err)
	s.Equal(1, snap.Level)
	s.Equal(model.StageStart, snap.Stage)
	s.Equal("Gullwick Lighthouse", snap.Setting)

	// Investigate every clue, including the red herring at the end
	_, err = s.app.GameController.EnterStage(s.ctx, token, model.StageClueHunt)
	s.Require().NoError(err)
	for i := range snap.ClueLabels {
		clueSnap, err := s.app.GameController.SelectClue(s.ctx, token, i)
		s.Require().NoError(err)
		s.NotEmpty(clueSnap.LastClue.Text)
	}

	// Interview the prime suspect
	_, err = s.app.GameController.EnterStage(s.ctx, token, model.StageInterview)
	s.Require().NoError(err)
	ivSnap, err := s.app.GameController.SelectSuspect(s.ctx, token, "dennis pike")
	s.Require().NoError(err)
	s.Equal("Dennis Pike", ivSnap.LastInterview.Name)

	// Accuse correctly
	_, err = s.app.GameController.EnterStage(s.ctx, token, model.StageGuess)
	s.Require().NoError(err)
	final, err := s.app.GameController.SubmitAccusation(s.ctx, token, "Dennis Pike")
	s.Require().NoError(err)
	s.Equal(model.ResultCorrect, final.Result)
	s.Equal(1, final.Progress)
	s.Equal("The ferry stub proves Dennis never left the island.", final.Explanation)

	// Progress is durable across a fresh login
	s.app.MockRandom.QueueString("tok-dalgliesh-2")
	sess, err := s.app.AccountService.LogIn(s.ctx, "dalgliesh", "scotlandyard")
	s.Require().NoError(err)
	fresh, err := s.app.GameController.StartSession(s.ctx, sess.Token, "dalgliesh")
	s.Require().NoError(err)
	s.Equal(1, fresh.Progress)
	s.Equal(2, fresh.Level)
	s.False(fresh.InGame)
}

func (s *IntegrationSuite) TestRestartAfterIncorrectAccusation() {
	token := s.logIn("wexford", "kingsmarkham", "tok-wexford")

	s.app.MockGenerator.QueueResponse(lighthouseScenario)
	_, err := s.app.GameController.BeginLevel(s.ctx, token, model.DifficultyEasy)
	s.Require().NoError(err)

	_, err = s.app.GameController.EnterStage(s.ctx, token, model.StageClueHunt)
	s.Require().NoError(err)
	_, err = s.app.GameController.EnterStage(s.ctx, token, model.StageGuess)
	s.Require().NoError(err)

	snap, err := s.app.GameController.SubmitAccusation(s.ctx, token, "Sara Holt")
	s.Require().NoError(err)
	s.Equal(model.ResultIncorrect, snap.Result)
	s.Equal(0, snap.Progress)

	// Restart replays the same level at the same difficulty
	s.app.MockGenerator.QueueResponse(lighthouseScenario)
	again, err := s.app.GameController.Restart(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(1, again.Level)
	s.Equal(model.DifficultyEasy, again.Difficulty)
	s.Equal(model.ResultNone, again.Result)
}

func (s *IntegrationSuite) TestConcurrentSessionsAreIndependent() {
	tokenA := s.logIn("morse", "oxford", "tok-morse")
	tokenB := s.logIn("lewis", "oxford2", "tok-lewis")

	s.app.MockGenerator.QueueResponse(lighthouseScenario)
	_, err := s.app.GameController.BeginLevel(s.ctx, tokenA, model.DifficultyMedium)
	s.Require().NoError(err)

	// B hasn't begun a level; A's scenario is invisible to B
	snapB, err := s.app.GameController.Snapshot(s.ctx, tokenB)
	s.Require().NoError(err)
	s.False(snapB.InGame)

	snapA, err := s.app.GameController.Snapshot(s.ctx, tokenA)
	s.Require().NoError(err)
	s.True(snapA.InGame)
}

func (s *IntegrationSuite) TestMalformedGenerationLeavesRetryOpen() {
	token := s.logIn("tennison", "southwark", "tok-tennison")

	s.app.MockGenerator.QueueResponse("Sorry, no mystery today.")
	_, err := s.app.GameController.BeginLevel(s.ctx, token, model.DifficultyMedium)
	s.ErrorIs(err, model.ErrMalformedScenario)

	s.app.MockGenerator.QueueResponse(lighthouseScenario)
	snap, err := s.app.GameController.BeginLevel(s.ctx, token, model.DifficultyMedium)
	s.Require().NoError(err)
	s.True(snap.InGame)
}

func (s *IntegrationSuite) TestExpiredSessionSweepReleasesGameState() {
	token := s.logIn("wexford", "kingsmarkham", "tok-wexford")

	s.app.MockGenerator.QueueResponse(lighthouseScenario)
	_, err := s.app.GameController.BeginLevel(s.ctx, token, model.DifficultyEasy)
	s.Require().NoError(err)

	s.app.MockClock.Advance(25 * time.Hour)

	// The sweep the server runs on its ticker
	for _, expired := range s.app.AccountService.CleanExpiredSessions() {
		s.app.GameController.EndSession(expired)
	}

	_, err = s.app.GameController.Snapshot(s.ctx, token)
	s.ErrorIs(err, model.ErrSessionNotFound, "an expired token must not pin its game session")
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}
