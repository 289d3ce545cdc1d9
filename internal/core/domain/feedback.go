package domain

import "time"

// Sentiment is the overall tone a manager attaches to a feedback entry.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// Sentiments lists every sentiment in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// Valid reports whether s is a known sentiment.
func (s Sentiment) Valid() bool {
	for _, known := range Sentiments {
		if s == known {
			return true
		}
	}
	return false
}

// Feedback is a manager's structured review of one employee.
type Feedback struct {
	ID             int64     `json:"id"`
	EmployeeID     int64     `json:"employeeId"`
	ManagerID      int64     `json:"managerId"`
	Strengths      string    `json:"strengths"`
	AreasToImprove string    `json:"areasToImprove"`
	Sentiment      Sentiment `json:"sentiment"`
	Acknowledged   bool      `json:"acknowledged"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FeedbackEventType names a feedback lifecycle transition.
type FeedbackEventType string

const (
	EventFeedbackCreated      FeedbackEventType = "feedback.created"
	EventFeedbackAcknowledged FeedbackEventType = "feedback.acknowledged"
)

// FeedbackEvent is emitted after a feedback entry is created or acknowledged.
type FeedbackEvent struct {
	Type       FeedbackEventType `json:"type"`
	FeedbackID int64             `json:"feedback_id"`
	EmployeeID int64             `json:"employee_id"`
	ManagerID  int64             `json:"manager_id"`
	Sentiment  Sentiment         `json:"sentiment"`
	OccurredAt time.Time         `json:"occurred_at"`
}
