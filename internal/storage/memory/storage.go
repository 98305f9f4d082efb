package memory

import (
	"context"
	"sync"

	"github.com/cluequest/cluequest-go/internal/model"
	"github.com/cluequest/cluequest-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// The single mutex makes insert-if-absent atomic, which is what enforces
// username uniqueness under concurrent signups.
type Storage struct {
	mu       sync.RWMutex
	accounts map[string]*model.Account
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[string]*model.Account),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.Username]; ok {
		return model.ErrUsernameTaken
	}
	copied := *account
	s.accounts[account.Username] = &copied
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *Storage) UpdateProgress(ctx context.Context, username string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[username]
	if !ok {
		return model.ErrAccountNotFound
	}
	account.Progress = progress
	return nil
}
