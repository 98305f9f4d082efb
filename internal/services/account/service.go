package account

import (
	"context"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/cluequest/cluequest-go/internal/dependencies/clock"
	"github.com/cluequest/cluequest-go/internal/dependencies/random"
	"github.com/cluequest/cluequest-go/internal/model"
	"github.com/cluequest/cluequest-go/internal/storage"
)

// Errors
var (
	ErrNoSuchUser     = errors.New("username does not exist")
	ErrWrongPassword  = errors.New("incorrect password")
	ErrInvalidSession = errors.New("invalid or expired session")
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Session represents an authenticated player session
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles accounts, credentials and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the account service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default account service configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new account Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// HashPassword returns the hex SHA3-256 digest of a password.
// The digest is deterministic and unsalted: equal passwords yield equal
// hashes across accounts. That is a known weakness of the stored record
// format, preserved so existing records stay verifiable.
func HashPassword(password string) string {
	digest := sha3.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}

// SignUp creates a new account with zero progress. Username uniqueness is
// enforced atomically by the storage layer, not checked here first.
func (s *Service) SignUp(ctx context.Context, username, password string) error {
	now := s.clock.Now()

	account := &model.Account{
		Username:     username,
		PasswordHash: HashPassword(password),
		Progress:     0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return err
	}

	s.logger.Info("account created", slog.String("username", username))
	return nil
}

// LogIn verifies credentials and creates a session. Unknown usernames and
// wrong passwords fail distinctly so the player gets an accurate message.
func (s *Service) LogIn(ctx context.Context, username, password string) (*Session, error) {
	account, err := s.storage.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}

	if account.PasswordHash != HashPassword(password) {
		return nil, ErrWrongPassword
	}

	return s.createSession(account.Username), nil
}

// LogOut removes a session. Unknown tokens are ignored.
func (s *Service) LogOut(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// LoadProgress returns the stored progress for an account. A freshly
// created account reports 0; for a known-existing account this never fails
// with a domain error.
func (s *Service) LoadProgress(ctx context.Context, username string) (int, error) {
	account, err := s.storage.GetAccount(ctx, username)
	if err != nil {
		return 0, err
	}
	return account.Progress, nil
}

// SaveProgress writes a new progress value. Progress only ever moves up:
// the game controller calls this exactly once per completed level with the
// old value plus one, and a regression is rejected outright.
func (s *Service) SaveProgress(ctx context.Context, username string, progress int) error {
	account, err := s.storage.GetAccount(ctx, username)
	if err != nil {
		return err
	}

	if progress < account.Progress {
		return model.ErrProgressRegression
	}

	if err := s.storage.UpdateProgress(ctx, username, progress); err != nil {
		return err
	}

	s.logger.Info("progress saved",
		slog.String("username", username),
		slog.Int("progress", progress),
	)
	return nil
}

// createSession creates a new session for a username
func (s *Service) createSession(username string) *Session {
	token := "sess_" + s.random.String(24, tokenAlphabet)
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// CleanExpiredSessions removes expired sessions (call periodically) and
// returns their tokens so state keyed on them elsewhere can be released too.
func (s *Service) CleanExpiredSessions() []string {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			expired = append(expired, token)
		}
	}
	return expired
}
