package domain

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type RegisterRequest struct {
	Email    string `json:"email" valid:"required~Email is required,email~Invalid email format"`
	Username string `json:"username" valid:"required~Username is required"`
	Password string `json:"password" valid:"required~Password is required,minstringlength(8)~Password must be at least 8 characters"`
}

type LoginRequest struct {
	Email    string `json:"email" valid:"required~Email is required,email~Invalid email format"`
	Password string `json:"password" valid:"required~Password is required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// SessionClaims is the payload of a session token. Subject carries the
// external identity ref; the role is looked up fresh from the users table
// on every request, never trusted from the token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Session is an issued credential with its expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IdentityProvider is the external collaborator that owns credentials and
// session issuance. The application only holds the external ref. Any
// concrete provider is swappable behind this interface.
type IdentityProvider interface {
	// CreateIdentity provisions a credential upstream and returns the
	// external ref the application stores on the user row.
	CreateIdentity(ctx context.Context, email, username, password string) (string, error)
	// Login verifies the password upstream and issues a session.
	Login(ctx context.Context, email, password string) (*Session, error)
	// VerifySession resolves an opaque session token to the external ref,
	// or ErrUnauthorized when the token is absent, expired or forged.
	VerifySession(ctx context.Context, token string) (string, error)
	// DeleteIdentity removes the upstream credential; used to compensate
	// when local provisioning fails after upstream creation succeeded.
	DeleteIdentity(ctx context.Context, externalID string) error
}

type AuthUseCase interface {
	Register(ctx context.Context, req *RegisterRequest) error
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}
