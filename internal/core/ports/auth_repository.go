package ports

import (
	"context"

	"github.com/teampulse/feedback-system/internal/core/domain"
)

// UserRepository is the record-store capability the auth core depends on.
// Lookups return domain.ErrUserNotFound when nothing matches and
// domain.ErrStoreUnavailable when the store cannot be reached.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create assigns the user id and returns domain.ErrUserExists when the
	// email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// ListByManager returns the employees reporting to managerID.
	ListByManager(ctx context.Context, managerID int64) ([]*domain.User, error)
}
