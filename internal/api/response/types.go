package response

import (
	"time"

	"github.com/cluequest/cluequest-go/internal/services/account"
)

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Username     string    `json:"username"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *account.Session) AuthResponse {
	return AuthResponse{
		Username:     s.Username,
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// AccountResponse is the response for account detail endpoints
type AccountResponse struct {
	Username string `json:"username"`
	Progress int    `json:"progress"`
	Level    int    `json:"level"`
}
