// Package security holds the credential primitives of the service: bcrypt
// password hashing and HS256 bearer tokens.
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenLifetime is applied when no explicit lifetime is given.
const DefaultTokenLifetime = 24 * time.Hour

// ErrInvalidToken is returned for any token that is malformed, badly signed
// or expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload signed into every bearer token. The subject carries
// the user's email.
type Claims struct {
	UserID *int64 `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewClaims builds the claims issued at login.
func NewClaims(email string, userID int64, role string) Claims {
	id := userID
	return Claims{
		UserID:           &id,
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: email},
	}
}

// JWTCodec encodes and decodes HS256 tokens with a process-wide secret.
type JWTCodec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// Option customises a JWTCodec.
type Option func(*JWTCodec)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(c *JWTCodec) { c.now = now }
}

// NewJWTCodec returns a codec signing with secret. A non-positive lifetime
// falls back to DefaultTokenLifetime.
func NewJWTCodec(secret string, lifetime time.Duration, opts ...Option) *JWTCodec {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	c := &JWTCodec{secret: []byte(secret), lifetime: lifetime, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lifetime returns the default token lifetime of the codec.
func (c *JWTCodec) Lifetime() time.Duration {
	return c.lifetime
}

// Encode signs claims with an expiry of now+lifetime. A non-positive lifetime
// uses the codec default. Any expiry already present in claims is replaced.
func (c *JWTCodec) Encode(claims Claims, lifetime time.Duration) (string, error) {
	if lifetime <= 0 {
		lifetime = c.lifetime
	}
	now := c.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(lifetime))

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and returns the claims.
func (c *JWTCodec) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
