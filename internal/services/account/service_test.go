package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cluequest/cluequest-go/internal/dependencies/mocks"
	"github.com/cluequest/cluequest-go/internal/dependencies/random"
	"github.com/cluequest/cluequest-go/internal/model"
	"github.com/cluequest/cluequest-go/internal/storage/memory"
	"github.com/cluequest/cluequest-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, random.New(), DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// SignUp tests

func (s *ServiceSuite) TestSignUpThenLogInSucceeds() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))

	session, err := s.service.LogIn(s.ctx, "alice", "s3cret")
	s.Require().NoError(err)
	s.Equal("alice", session.Username)
	s.NotEmpty(session.Token)
}

func (s *ServiceSuite) TestSignUpDuplicateUsernameFails() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))

	err := s.service.SignUp(s.ctx, "alice", "different-password")
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *ServiceSuite) TestSignUpStartsAtLevelZero() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))

	progress, err := s.service.LoadProgress(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(0, progress)
}

func (s *ServiceSuite) TestSignUpStoresDigestNotPlaintext() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))

	account, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEqual("s3cret", account.PasswordHash)
	s.Equal(HashPassword("s3cret"), account.PasswordHash)
	// SHA3-256 hex is always 64 chars
	s.Len(account.PasswordHash, 64)
}

// LogIn tests

func (s *ServiceSuite) TestLogInUnknownUserFails() {
	_, err := s.service.LogIn(s.ctx, "nobody", "whatever")
	s.ErrorIs(err, ErrNoSuchUser)
}

func (s *ServiceSuite) TestLogInWrongPasswordFails() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))

	_, err := s.service.LogIn(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrWrongPassword)
}

// Session tests

func (s *ServiceSuite) TestValidateSessionReturnsSession() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))
	session, _ := s.service.LogIn(s.ctx, "alice", "s3cret")

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal("alice", validated.Username)
}

func (s *ServiceSuite) TestValidateSessionUnknownTokenFails() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionExpires() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))
	session, _ := s.service.LogIn(s.ctx, "alice", "s3cret")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestLogOutInvalidatesSession() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))
	session, _ := s.service.LogIn(s.ctx, "alice", "s3cret")

	s.service.LogOut(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))
	old, _ := s.service.LogIn(s.ctx, "alice", "s3cret")

	s.clock.Advance(25 * time.Hour)
	fresh, _ := s.service.LogIn(s.ctx, "alice", "s3cret")

	expired := s.service.CleanExpiredSessions()
	s.Equal([]string{old.Token}, expired)

	_, err := s.service.ValidateSession(old.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}

// Progress tests

func (s *ServiceSuite) TestSaveProgressAdvances() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))

	s.Require().NoError(s.service.SaveProgress(s.ctx, "alice", 1))
	s.Require().NoError(s.service.SaveProgress(s.ctx, "alice", 2))

	progress, err := s.service.LoadProgress(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(2, progress)
}

func (s *ServiceSuite) TestSaveProgressRejectsRegression() {
	s.Require().NoError(s.service.SignUp(s.ctx, "alice", "s3cret"))
	s.Require().NoError(s.service.SaveProgress(s.ctx, "alice", 3))

	err := s.service.SaveProgress(s.ctx, "alice", 2)
	s.ErrorIs(err, model.ErrProgressRegression)

	progress, _ := s.service.LoadProgress(s.ctx, "alice")
	s.Equal(3, progress)
}

func (s *ServiceSuite) TestSaveProgressUnknownUserFails() {
	err := s.service.SaveProgress(s.ctx, "nobody", 1)
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestHashPasswordIsDeterministic() {
	s.Equal(HashPassword("s3cret"), HashPassword("s3cret"))
	s.NotEqual(HashPassword("s3cret"), HashPassword("s3cret2"))
}
