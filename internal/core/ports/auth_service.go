package ports

import (
	"context"
	"time"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/pkg/security"
)

// RegisterInput carries a registration request. ManagerID is ignored for
// managers.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Role      string
	ManagerID *int64
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token     string
	TokenType string
	UserID    int64
	Role      domain.Role
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// IdentityResolver turns a bearer token into the requester's identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Identity, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenCodec signs and verifies bearer tokens.
type TokenCodec interface {
	Encode(claims security.Claims, lifetime time.Duration) (string, error)
	Decode(token string) (*security.Claims, error)
}

// LoginThrottle tracks failed logins per email. Implementations may be nil
// in which case logins are never throttled.
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
