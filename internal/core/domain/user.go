package domain

import "time"

// User is the persisted credential record.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	// ManagerID is set for employees only.
	ManagerID *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the authenticated requester for the duration of one request.
// It never carries the password hash.
type Identity struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	ManagerID *int64     `json:"managerId"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Identity returns a snapshot of u safe to hand to request handlers.
func (u *User) Identity() *Identity {
	id := &Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if u.ManagerID != nil {
		m := *u.ManagerID
		id.ManagerID = &m
	}
	if !u.CreatedAt.IsZero() {
		t := u.CreatedAt
		id.CreatedAt = &t
	}
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		id.UpdatedAt = &t
	}
	return id
}
