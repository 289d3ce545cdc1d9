package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/teampulse/feedback-system/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[int64]*domain.User
	nextID    int64
	findCalls int
	findErr   error // if set, every lookup returns this error
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.ManagerID != nil {
		m := *u.ManagerID
		clone.ManagerID = &m
	}
	return &clone
}

// seed stores u under its own ID, bypassing validation.
func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	r.users[u.ID] = cloneUser(u)
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	return u
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	created.ID = r.nextID
	r.nextID++
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) ListByManager(_ context.Context, managerID int64) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.User
	for _, u := range r.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------------------------------------------------------------------------
// In-memory stub feedback repository
// ---------------------------------------------------------------------------

type stubFeedbackRepo struct {
	entries map[int64]*domain.Feedback
	nextID  int64
	err     error
}

func newStubFeedbackRepo() *stubFeedbackRepo {
	return &stubFeedbackRepo{entries: make(map[int64]*domain.Feedback), nextID: 1}
}

func (r *stubFeedbackRepo) Create(_ context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	if r.err != nil {
		return nil, r.err
	}
	clone := *f
	clone.ID = r.nextID
	r.nextID++
	stored := clone
	r.entries[clone.ID] = &stored
	return &clone, nil
}

func (r *stubFeedbackRepo) FindByID(_ context.Context, id int64) (*domain.Feedback, error) {
	if r.err != nil {
		return nil, r.err
	}
	f, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFeedbackRepo) ListByEmployee(_ context.Context, employeeID int64) ([]*domain.Feedback, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Feedback
	for _, f := range r.entries {
		if f.EmployeeID == employeeID {
			clone := *f
			out = append(out, &clone)
		}
	}
	// Mirrors the Mongo sort on created_at descending.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubFeedbackRepo) MarkAcknowledged(_ context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	f, ok := r.entries[id]
	if !ok {
		return domain.ErrFeedbackNotFound
	}
	f.Acknowledged = true
	return nil
}

// ---------------------------------------------------------------------------
// Recording event queue
// ---------------------------------------------------------------------------

type recordingQueue struct {
	events []domain.FeedbackEvent
	full   bool
}

func (q *recordingQueue) Enqueue(e domain.FeedbackEvent) bool {
	if q.full {
		return false
	}
	q.events = append(q.events, e)
	return true
}

func int64Ptr(v int64) *int64 { return &v }
