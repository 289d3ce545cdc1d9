package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
	"github.com/teampulse/feedback-system/internal/core/service"
	"github.com/teampulse/feedback-system/internal/pkg/security"
)

const testSecret = "router-test-secret"

// memUsers is an in-memory ports.UserRepository.
type memUsers struct {
	byID map[int64]*domain.User
}

func (m *memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	u.ID = int64(100 + len(m.byID))
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) ListByManager(context.Context, int64) ([]*domain.User, error) {
	return nil, nil
}

type emptyFeedback struct{}

func (emptyFeedback) TeamDashboard(context.Context, *domain.Identity) ([]ports.TeamMember, error) {
	return nil, nil
}

func (emptyFeedback) EmployeeFeedback(context.Context, *domain.Identity, int64) ([]*domain.Feedback, error) {
	return nil, domain.ErrForbidden
}

func (emptyFeedback) CreateFeedback(context.Context, *domain.Identity, ports.CreateFeedbackInput) (*domain.Feedback, error) {
	return nil, domain.ErrForbidden
}

func (emptyFeedback) Timeline(context.Context, *domain.Identity) ([]ports.TimelineEntry, error) {
	return nil, nil
}

func (emptyFeedback) Acknowledge(context.Context, *domain.Identity, int64) error {
	return domain.ErrForbidden
}

type testServer struct {
	handler http.Handler
	codec   *security.JWTCodec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	users := &memUsers{byID: map[int64]*domain.User{
		3: {ID: 3, Name: "Alice", Email: "alice@x.com", PasswordHash: hash, Role: domain.RoleManager},
		7: {ID: 7, Name: "Bob", Email: "bob@x.com", PasswordHash: hash, Role: domain.RoleEmployee, ManagerID: func() *int64 { v := int64(3); return &v }()},
	}}
	codec := security.NewJWTCodec(testSecret, time.Hour)
	log := zerolog.Nop()

	e := NewRouter(Deps{
		Auth:        service.NewAuthService(users, hasher, codec, time.Hour, log),
		Resolver:    service.NewIdentityResolver(users, codec),
		Feedback:    emptyFeedback{},
		CORSOrigins: []string{"http://localhost:3000"},
		Logger:      log,
	})
	return &testServer{handler: e, codec: codec}
}

func (s *testServer) token(t *testing.T, id int64, role domain.Role) string {
	t.Helper()
	tok, err := s.codec.Encode(security.NewClaims("x@x.com", id, role.String()), 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return tok
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body.Detail
}

func TestRouter_InvalidTokenOnManagerRouteIs401(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/dashboard", "not-a-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
	}
	if got := detail(t, rec); got != "Could not validate credentials" {
		t.Fatalf("unexpected detail %q", got)
	}
}

func TestRouter_RoleGates(t *testing.T) {
	s := newTestServer(t)
	managerTok := s.token(t, 3, domain.RoleManager)
	employeeTok := s.token(t, 7, domain.RoleEmployee)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"manager dashboard", http.MethodGet, "/dashboard", managerTok, http.StatusOK},
		{"employee on manager route", http.MethodGet, "/dashboard", employeeTok, http.StatusForbidden},
		{"employee timeline", http.MethodGet, "/employee-dashboard", employeeTok, http.StatusOK},
		{"manager on employee route", http.MethodGet, "/employee-dashboard", managerTok, http.StatusForbidden},
		{"no token", http.MethodGet, "/employee-dashboard", "", http.StatusUnauthorized},
		{"deleted user", http.MethodGet, "/me", s.token(t, 42, domain.RoleManager), http.StatusUnauthorized},
		{"foreign feedback", http.MethodGet, "/feedback/8", managerTok, http.StatusForbidden},
		{"unknown path", http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(tc.method, tc.path, tc.token, "")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_ForbiddenMessages(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/dashboard", s.token(t, 7, domain.RoleEmployee), "")
	if got := detail(t, rec); got != "Only managers can access this resource" {
		t.Fatalf("unexpected detail %q", got)
	}

	rec = s.do(http.MethodPost, "/acknowledge/1", s.token(t, 7, domain.RoleEmployee), "")
	if got := detail(t, rec); got != "Not authorized to acknowledge this feedback" {
		t.Fatalf("unexpected detail %q", got)
	}
}

func TestRouter_LoginAndMe(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/login", "", `{"email":"bob@x.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tok); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if tok.TokenType != "bearer" || tok.AccessToken == "" {
		t.Fatalf("unexpected token response: %s", rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/me", tok.AccessToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var me domain.Identity
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if me.ID != 7 || me.Role != domain.RoleEmployee || me.ManagerID == nil || *me.ManagerID != 3 {
		t.Fatalf("unexpected identity: %+v", me)
	}

	rec = s.do(http.MethodPost, "/login", "", `{"email":"bob@x.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized || detail(t, rec) != "Incorrect email or password" {
		t.Fatalf("expected 401 with bad credentials message, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RegisterValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/register", "", `{"name":"C","email":"c@x.com","password":"pw","role":"Admin"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := detail(t, rec); got != "Invalid role. Must be 'Manager' or 'Employee'." {
		t.Fatalf("unexpected detail %q", got)
	}

	rec = s.do(http.MethodPost, "/register", "", `{"name":"C","email":"c@x.com","password":"pw","role":"Employee","manager_id":3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
}
