package ports

import (
	"context"
	"time"

	"github.com/teampulse/feedback-system/internal/core/domain"
)

// CreateFeedbackInput carries a manager's new feedback entry.
type CreateFeedbackInput struct {
	EmployeeID     int64
	Strengths      string
	AreasToImprove string
	Sentiment      string
}

// TeamMember is one row of the manager dashboard.
type TeamMember struct {
	Employee      *domain.Identity
	FeedbackCount int
	Sentiments    map[domain.Sentiment]int
}

// TimelineEntry is one row of the employee dashboard.
type TimelineEntry struct {
	ID             int64
	Sentiment      domain.Sentiment
	Strengths      string
	AreasToImprove string
	Acknowledged   bool
	CreatedAt      time.Time
	ManagerName    string
}

// FeedbackService defines the feedback use cases. Every method expects an
// identity that already passed the matching role gate.
type FeedbackService interface {
	TeamDashboard(ctx context.Context, manager *domain.Identity) ([]TeamMember, error)
	EmployeeFeedback(ctx context.Context, manager *domain.Identity, employeeID int64) ([]*domain.Feedback, error)
	CreateFeedback(ctx context.Context, manager *domain.Identity, input CreateFeedbackInput) (*domain.Feedback, error)
	Timeline(ctx context.Context, employee *domain.Identity) ([]TimelineEntry, error)
	Acknowledge(ctx context.Context, employee *domain.Identity, feedbackID int64) error
}

// FeedbackNotifier delivers feedback lifecycle events.
type FeedbackNotifier interface {
	Notify(ctx context.Context, event domain.FeedbackEvent) error
}

// EventQueue accepts events for asynchronous delivery. Enqueue must not block.
type EventQueue interface {
	Enqueue(event domain.FeedbackEvent) bool
}
