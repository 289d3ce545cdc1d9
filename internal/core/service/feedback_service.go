package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
	"github.com/teampulse/feedback-system/internal/pkg/metrics"
)

const unknownManagerName = "Unknown Manager"

type FeedbackService struct {
	users    ports.UserRepository
	feedback ports.FeedbackRepository
	events   ports.EventQueue
	logger   zerolog.Logger
}

// NewFeedbackService wires the feedback use cases. events may be nil, in
// which case no lifecycle events are emitted.
func NewFeedbackService(users ports.UserRepository, feedback ports.FeedbackRepository, events ports.EventQueue, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{users: users, feedback: feedback, events: events, logger: logger}
}

// TeamDashboard summarises the feedback received by each of the manager's
// direct reports.
func (s *FeedbackService) TeamDashboard(ctx context.Context, manager *domain.Identity) ([]ports.TeamMember, error) {
	employees, err := s.users.ListByManager(ctx, manager.ID)
	if err != nil {
		return nil, err
	}

	team := make([]ports.TeamMember, 0, len(employees))
	for _, emp := range employees {
		entries, err := s.feedback.ListByEmployee(ctx, emp.ID)
		if err != nil {
			return nil, err
		}
		counts := make(map[domain.Sentiment]int, len(domain.Sentiments))
		for _, sentiment := range domain.Sentiments {
			counts[sentiment] = 0
		}
		for _, f := range entries {
			counts[f.Sentiment]++
		}
		team = append(team, ports.TeamMember{
			Employee:      emp.Identity(),
			FeedbackCount: len(entries),
			Sentiments:    counts,
		})
	}
	return team, nil
}

// EmployeeFeedback lists the feedback of one of the manager's direct reports.
func (s *FeedbackService) EmployeeFeedback(ctx context.Context, manager *domain.Identity, employeeID int64) ([]*domain.Feedback, error) {
	if err := s.ensureManages(ctx, manager, employeeID); err != nil {
		return nil, err
	}
	return s.feedback.ListByEmployee(ctx, employeeID)
}

// CreateFeedback records new feedback for one of the manager's direct reports.
func (s *FeedbackService) CreateFeedback(ctx context.Context, manager *domain.Identity, input ports.CreateFeedbackInput) (*domain.Feedback, error) {
	sentiment := domain.Sentiment(input.Sentiment)
	if !sentiment.Valid() {
		return nil, domain.NewValidationError("Invalid sentiment. Must be POSITIVE, NEUTRAL or NEGATIVE.")
	}
	if err := s.ensureManages(ctx, manager, input.EmployeeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.feedback.Create(ctx, &domain.Feedback{
		EmployeeID:     input.EmployeeID,
		ManagerID:      manager.ID,
		Strengths:      input.Strengths,
		AreasToImprove: input.AreasToImprove,
		Sentiment:      sentiment,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create feedback")
		return nil, err
	}

	metrics.FeedbackCreatedTotal.WithLabelValues(string(sentiment)).Inc()
	s.logger.Info().Int64("feedback_id", created.ID).Int64("employee_id", created.EmployeeID).Msg("feedback created")

	s.emit(domain.FeedbackEvent{
		Type:       domain.EventFeedbackCreated,
		FeedbackID: created.ID,
		EmployeeID: created.EmployeeID,
		ManagerID:  created.ManagerID,
		Sentiment:  created.Sentiment,
		OccurredAt: now,
	})
	return created, nil
}

// Timeline lists the employee's own feedback, newest first, with the name of
// the manager who wrote each entry.
func (s *FeedbackService) Timeline(ctx context.Context, employee *domain.Identity) ([]ports.TimelineEntry, error) {
	entries, err := s.feedback.ListByEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string)
	timeline := make([]ports.TimelineEntry, 0, len(entries))
	for _, f := range entries {
		name, ok := names[f.ManagerID]
		if !ok {
			name, err = s.managerName(ctx, f.ManagerID)
			if err != nil {
				return nil, err
			}
			names[f.ManagerID] = name
		}
		timeline = append(timeline, ports.TimelineEntry{
			ID:             f.ID,
			Sentiment:      f.Sentiment,
			Strengths:      f.Strengths,
			AreasToImprove: f.AreasToImprove,
			Acknowledged:   f.Acknowledged,
			CreatedAt:      f.CreatedAt,
			ManagerName:    name,
		})
	}
	return timeline, nil
}

// Acknowledge marks feedback addressed to employee as read.
func (s *FeedbackService) Acknowledge(ctx context.Context, employee *domain.Identity, feedbackID int64) error {
	f, err := s.feedback.FindByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, domain.ErrFeedbackNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if f.EmployeeID != employee.ID {
		return domain.ErrForbidden
	}

	if err := s.feedback.MarkAcknowledged(ctx, feedbackID); err != nil {
		return err
	}

	metrics.FeedbackAcknowledgedTotal.Inc()
	s.emit(domain.FeedbackEvent{
		Type:       domain.EventFeedbackAcknowledged,
		FeedbackID: f.ID,
		EmployeeID: f.EmployeeID,
		ManagerID:  f.ManagerID,
		Sentiment:  f.Sentiment,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ensureManages fails with domain.ErrForbidden unless employeeID exists and
// reports to manager.
func (s *FeedbackService) ensureManages(ctx context.Context, manager *domain.Identity, employeeID int64) error {
	emp, err := s.users.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if emp.ManagerID == nil || *emp.ManagerID != manager.ID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *FeedbackService) managerName(ctx context.Context, id int64) (string, error) {
	m, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return unknownManagerName, nil
		}
		return "", err
	}
	return m.Name, nil
}

func (s *FeedbackService) emit(event domain.FeedbackEvent) {
	if s.events == nil {
		return
	}
	if !s.events.Enqueue(event) {
		s.logger.Warn().Str("type", string(event.Type)).Int64("feedback_id", event.FeedbackID).Msg("feedback event dropped")
	}
}
