package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
)

// team seeds manager 1 with employees 2 and 3, and manager 10 with employee 11.
func team() *stubUserRepo {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 1, Name: "Mona", Email: "mona@x.com", Role: domain.RoleManager})
	repo.seed(&domain.User{ID: 2, Name: "Eli", Email: "eli@x.com", Role: domain.RoleEmployee, ManagerID: int64Ptr(1)})
	repo.seed(&domain.User{ID: 3, Name: "Fay", Email: "fay@x.com", Role: domain.RoleEmployee, ManagerID: int64Ptr(1)})
	repo.seed(&domain.User{ID: 10, Name: "Otto", Email: "otto@x.com", Role: domain.RoleManager})
	repo.seed(&domain.User{ID: 11, Name: "Gus", Email: "gus@x.com", Role: domain.RoleEmployee, ManagerID: int64Ptr(10)})
	return repo
}

func identityOf(t *testing.T, repo *stubUserRepo, id int64) *domain.Identity {
	t.Helper()
	u, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("seed lookup: %v", err)
	}
	return u.Identity()
}

func TestFeedbackService_CreateFeedback(t *testing.T) {
	users := team()
	fb := newStubFeedbackRepo()
	queue := &recordingQueue{}
	svc := NewFeedbackService(users, fb, queue, discardLogger)

	created, err := svc.CreateFeedback(context.Background(), identityOf(t, users, 1), ports.CreateFeedbackInput{
		EmployeeID: 2, Strengths: "Clear communication", AreasToImprove: "Estimates", Sentiment: "POSITIVE",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ManagerID != 1 || created.EmployeeID != 2 || created.Acknowledged {
		t.Fatalf("unexpected feedback: %+v", created)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("CreatedAt must not be zero")
	}
	if len(queue.events) != 1 || queue.events[0].Type != domain.EventFeedbackCreated || queue.events[0].FeedbackID != created.ID {
		t.Fatalf("expected one feedback.created event, got %+v", queue.events)
	}
}

func TestFeedbackService_CreateFeedback_Rejections(t *testing.T) {
	users := team()
	svc := NewFeedbackService(users, newStubFeedbackRepo(), nil, discardLogger)
	manager := identityOf(t, users, 1)

	cases := []struct {
		name  string
		input ports.CreateFeedbackInput
		want  error
	}{
		{"bad sentiment", ports.CreateFeedbackInput{EmployeeID: 2, Sentiment: "HAPPY"}, domain.ErrValidation},
		{"other manager's employee", ports.CreateFeedbackInput{EmployeeID: 11, Sentiment: "NEUTRAL"}, domain.ErrForbidden},
		{"unknown employee", ports.CreateFeedbackInput{EmployeeID: 99, Sentiment: "NEUTRAL"}, domain.ErrForbidden},
		{"manager as target", ports.CreateFeedbackInput{EmployeeID: 10, Sentiment: "NEUTRAL"}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateFeedback(context.Background(), manager, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFeedbackService_CreateFeedback_QueueFullStillSucceeds(t *testing.T) {
	users := team()
	svc := NewFeedbackService(users, newStubFeedbackRepo(), &recordingQueue{full: true}, discardLogger)

	if _, err := svc.CreateFeedback(context.Background(), identityOf(t, users, 1), ports.CreateFeedbackInput{EmployeeID: 2, Sentiment: "NEGATIVE"}); err != nil {
		t.Fatalf("a dropped notification must not fail the request: %v", err)
	}
}

func TestFeedbackService_TeamDashboard(t *testing.T) {
	users := team()
	fb := newStubFeedbackRepo()
	svc := NewFeedbackService(users, fb, nil, discardLogger)
	manager := identityOf(t, users, 1)

	for _, s := range []string{"POSITIVE", "POSITIVE", "NEGATIVE"} {
		if _, err := svc.CreateFeedback(context.Background(), manager, ports.CreateFeedbackInput{EmployeeID: 2, Sentiment: s}); err != nil {
			t.Fatalf("seed feedback: %v", err)
		}
	}

	got, err := svc.TeamDashboard(context.Background(), manager)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 team members, got %d", len(got))
	}

	eli := got[0]
	if eli.Employee.ID != 2 || eli.FeedbackCount != 3 {
		t.Fatalf("unexpected first row: %+v", eli)
	}
	if eli.Sentiments[domain.SentimentPositive] != 2 || eli.Sentiments[domain.SentimentNeutral] != 0 || eli.Sentiments[domain.SentimentNegative] != 1 {
		t.Fatalf("unexpected sentiment counts: %v", eli.Sentiments)
	}

	fay := got[1]
	if fay.FeedbackCount != 0 || len(fay.Sentiments) != 3 {
		t.Fatalf("employee without feedback must report zero counts for every sentiment: %+v", fay)
	}
}

func TestFeedbackService_EmployeeFeedback(t *testing.T) {
	users := team()
	fb := newStubFeedbackRepo()
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	fb.entries[1] = &domain.Feedback{ID: 1, EmployeeID: 2, ManagerID: 1, Sentiment: domain.SentimentNeutral, CreatedAt: base}
	fb.entries[2] = &domain.Feedback{ID: 2, EmployeeID: 2, ManagerID: 1, Sentiment: domain.SentimentPositive, CreatedAt: base.Add(time.Hour)}
	svc := NewFeedbackService(users, fb, nil, discardLogger)

	list, err := svc.EmployeeFeedback(context.Background(), identityOf(t, users, 1), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != 2 {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if _, err := svc.EmployeeFeedback(context.Background(), identityOf(t, users, 10), 2); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a non-subordinate, got %v", err)
	}
}

func TestFeedbackService_Timeline(t *testing.T) {
	users := team()
	fb := newStubFeedbackRepo()
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	fb.entries[1] = &domain.Feedback{ID: 1, EmployeeID: 2, ManagerID: 1, Sentiment: domain.SentimentNeutral, CreatedAt: base}
	fb.entries[2] = &domain.Feedback{ID: 2, EmployeeID: 2, ManagerID: 77, Sentiment: domain.SentimentPositive, CreatedAt: base.Add(time.Hour)}
	fb.entries[3] = &domain.Feedback{ID: 3, EmployeeID: 3, ManagerID: 1, Sentiment: domain.SentimentNegative, CreatedAt: base}
	svc := NewFeedbackService(users, fb, nil, discardLogger)

	timeline, err := svc.Timeline(context.Background(), identityOf(t, users, 2))
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(timeline))
	}
	if timeline[0].ID != 2 || timeline[0].ManagerName != unknownManagerName {
		t.Fatalf("unexpected first entry: %+v", timeline[0])
	}
	if timeline[1].ID != 1 || timeline[1].ManagerName != "Mona" {
		t.Fatalf("unexpected second entry: %+v", timeline[1])
	}
}

func TestFeedbackService_Acknowledge(t *testing.T) {
	users := team()
	fb := newStubFeedbackRepo()
	fb.entries[1] = &domain.Feedback{ID: 1, EmployeeID: 2, ManagerID: 1, Sentiment: domain.SentimentPositive}
	queue := &recordingQueue{}
	svc := NewFeedbackService(users, fb, queue, discardLogger)

	if err := svc.Acknowledge(context.Background(), identityOf(t, users, 3), 1); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for someone else's feedback, got %v", err)
	}
	if err := svc.Acknowledge(context.Background(), identityOf(t, users, 2), 99); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for missing feedback, got %v", err)
	}
	if fb.entries[1].Acknowledged {
		t.Fatal("rejected acknowledgment must not change the entry")
	}

	if err := svc.Acknowledge(context.Background(), identityOf(t, users, 2), 1); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if !fb.entries[1].Acknowledged {
		t.Fatal("feedback must be acknowledged")
	}
	if len(queue.events) != 1 || queue.events[0].Type != domain.EventFeedbackAcknowledged {
		t.Fatalf("expected one feedback.acknowledged event, got %+v", queue.events)
	}
}

func TestFeedbackService_StoreErrorsPropagate(t *testing.T) {
	users := team()
	fb := newStubFeedbackRepo()
	fb.err = domain.ErrStoreUnavailable
	svc := NewFeedbackService(users, fb, nil, discardLogger)

	if _, err := svc.Timeline(context.Background(), identityOf(t, users, 2)); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if err := svc.Acknowledge(context.Background(), identityOf(t, users, 2), 1); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
