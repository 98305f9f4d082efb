package storage

import (
	"context"

	"github.com/cluequest/cluequest-go/internal/model"
)

// Storage defines the interface for account persistence
type Storage interface {
	// CreateAccount inserts a new account if and only if the username is
	// free. Uniqueness is enforced atomically by the store itself, never by
	// a check-then-insert in the caller. Returns model.ErrUsernameTaken if
	// the username exists.
	CreateAccount(ctx context.Context, account *model.Account) error

	// GetAccount fetches an account by username.
	// Returns model.ErrAccountNotFound if absent.
	GetAccount(ctx context.Context, username string) (*model.Account, error)

	// UpdateProgress updates the stored progress for an existing account.
	// Returns model.ErrAccountNotFound if absent.
	UpdateProgress(ctx context.Context, username string, progress int) error
}
