package service

import (
	"context"
	"errors"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
	"github.com/teampulse/feedback-system/internal/pkg/metrics"
)

// IdentityResolver rebuilds the requester's identity from a bearer token.
// Every call performs exactly one store lookup; nothing is cached, so role
// and record changes apply on the next request.
type IdentityResolver struct {
	users  ports.UserRepository
	tokens ports.TokenCodec
}

func NewIdentityResolver(users ports.UserRepository, tokens ports.TokenCodec) *IdentityResolver {
	return &IdentityResolver{users: users, tokens: tokens}
}

// Resolve returns domain.ErrUnauthenticated for bad tokens, tokens missing
// user_id or role, and tokens of users that no longer exist. Store failures
// are returned unchanged.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := r.tokens.Decode(token)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrUnauthenticated
	}
	if claims.UserID == nil || claims.Role == "" {
		metrics.TokenValidationsTotal.WithLabelValues("incomplete").Inc()
		return nil, domain.ErrUnauthenticated
	}

	user, err := r.users.FindByID(ctx, *claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TokenValidationsTotal.WithLabelValues("unknown_user").Inc()
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.Role.Valid() {
		metrics.TokenValidationsTotal.WithLabelValues("unknown_role").Inc()
		return nil, domain.ErrUnauthenticated
	}

	metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
	return user.Identity(), nil
}
