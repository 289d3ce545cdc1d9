package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/teampulse/feedback-system/internal/api/middleware"
	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubFeedbackService struct {
	teamFn        func(ctx context.Context, m *domain.Identity) ([]ports.TeamMember, error)
	employeeFn    func(ctx context.Context, m *domain.Identity, employeeID int64) ([]*domain.Feedback, error)
	createFn      func(ctx context.Context, m *domain.Identity, in ports.CreateFeedbackInput) (*domain.Feedback, error)
	timelineFn    func(ctx context.Context, e *domain.Identity) ([]ports.TimelineEntry, error)
	acknowledgeFn func(ctx context.Context, e *domain.Identity, feedbackID int64) error
}

func (s *stubFeedbackService) TeamDashboard(ctx context.Context, m *domain.Identity) ([]ports.TeamMember, error) {
	return s.teamFn(ctx, m)
}

func (s *stubFeedbackService) EmployeeFeedback(ctx context.Context, m *domain.Identity, employeeID int64) ([]*domain.Feedback, error) {
	return s.employeeFn(ctx, m, employeeID)
}

func (s *stubFeedbackService) CreateFeedback(ctx context.Context, m *domain.Identity, in ports.CreateFeedbackInput) (*domain.Feedback, error) {
	return s.createFn(ctx, m, in)
}

func (s *stubFeedbackService) Timeline(ctx context.Context, e *domain.Identity) ([]ports.TimelineEntry, error) {
	return s.timelineFn(ctx, e)
}

func (s *stubFeedbackService) Acknowledge(ctx context.Context, e *domain.Identity, feedbackID int64) error {
	return s.acknowledgeFn(ctx, e, feedbackID)
}

// newRequest builds an echo context for the given method, body and content
// type. A non-nil identity is stored as if Auth had run.
func newRequest(method, target, contentType, body string, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, contentType)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(middleware.IdentityKey, identity)
	}
	return c, rec
}

func expectHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d", code, he.Code)
	}
	if msg != "" && he.Message != msg {
		t.Fatalf("expected message %q, got %v", msg, he.Message)
	}
}

func expectValidation(t *testing.T, err error, contains string) {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Message, contains) {
		t.Fatalf("expected message containing %q, got %q", contains, ve.Message)
	}
}

func int64Ptr(v int64) *int64 { return &v }
