package handler

import (
	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		ManagerID: req.ManagerID,
	}
}

func toCreateFeedbackInput(req createFeedbackRequest) ports.CreateFeedbackInput {
	return ports.CreateFeedbackInput{
		EmployeeID:     req.EmployeeID,
		Strengths:      req.Strengths,
		AreasToImprove: req.AreasToImprove,
		Sentiment:      req.Sentiment,
	}
}

// --- Domain → Response ---

func toFeedbackResponse(f *domain.Feedback) feedbackResponse {
	return feedbackResponse{
		ID:             f.ID,
		EmployeeID:     f.EmployeeID,
		ManagerID:      f.ManagerID,
		Strengths:      f.Strengths,
		AreasToImprove: f.AreasToImprove,
		Sentiment:      string(f.Sentiment),
		Acknowledged:   f.Acknowledged,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func toFeedbackList(items []*domain.Feedback) []feedbackResponse {
	out := make([]feedbackResponse, 0, len(items))
	for _, f := range items {
		out = append(out, toFeedbackResponse(f))
	}
	return out
}

func toTeamMember(m ports.TeamMember) teamMemberResponse {
	sentiments := make(map[string]int, len(domain.Sentiments))
	for _, s := range domain.Sentiments {
		sentiments[string(s)] = m.Sentiments[s]
	}

	var emp teamEmployee
	if m.Employee != nil {
		emp = teamEmployee{
			ID:    m.Employee.ID,
			Name:  m.Employee.Name,
			Email: m.Employee.Email,
			Role:  m.Employee.Role.String(),
		}
	}
	return teamMemberResponse{Employee: emp, FeedbackCount: m.FeedbackCount, Sentiments: sentiments}
}

func toTimelineEntry(e ports.TimelineEntry) timelineEntryResponse {
	return timelineEntryResponse{
		ID:             e.ID,
		Sentiment:      string(e.Sentiment),
		Strengths:      e.Strengths,
		AreasToImprove: e.AreasToImprove,
		Acknowledged:   e.Acknowledged,
		CreatedAt:      e.CreatedAt,
		ManagerName:    e.ManagerName,
	}
}
