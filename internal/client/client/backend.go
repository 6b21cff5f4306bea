package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/common"
)

// User is the public view of an account as returned by the API.
type User struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  common.Role `json:"role"`
}

// AuthResult is a user together with a freshly issued credential.
type AuthResult struct {
	User  User
	Token string
}

// TokenInfo is what the server asserts about a credential.
type TokenInfo struct {
	UserID    string      `json:"id"`
	Role      common.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type SignupRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     common.Role `json:"role"`
}

// Backend is the auth API as seen by the session manager.
type Backend interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Restore resolves a stored credential to its user.
	Restore(ctx context.Context, token string) (*User, error)
	Verify(ctx context.Context, token string) (*TokenInfo, error)
	// Logout asks the server to revoke token.
	Logout(ctx context.Context, token string) error
}
