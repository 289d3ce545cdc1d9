package ports

import (
	"context"

	"github.com/teampulse/feedback-system/internal/core/domain"
)

// FeedbackRepository defines persistence operations for feedback entries.
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	FindByID(ctx context.Context, id int64) (*domain.Feedback, error)
	// ListByEmployee returns the employee's feedback, newest first.
	ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.Feedback, error)
	MarkAcknowledged(ctx context.Context, id int64) error
}
