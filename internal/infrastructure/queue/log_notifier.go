package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teampulse/feedback-system/internal/core/domain"
)

// LogNotifier writes events to the structured log. It is used when no broker
// is configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, event domain.FeedbackEvent) error {
	n.log.Info().
		Str("type", string(event.Type)).
		Int64("feedback_id", event.FeedbackID).
		Int64("employee_id", event.EmployeeID).
		Int64("manager_id", event.ManagerID).
		Str("sentiment", string(event.Sentiment)).
		Time("occurred_at", event.OccurredAt).
		Msg("feedback event")
	return nil
}
