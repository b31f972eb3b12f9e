package model

import (
	"strings"
	"time"
)

// User is an account that can be assigned as a supervisor reviewer.
type User struct {
	ID        int64     `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Reviewer is a supervisor assigned to a flash while it waits in pending_supervisor.
type Reviewer struct {
	FlashID    int64     `json:"flash_id" db:"flash_id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Email      string    `json:"email" db:"email"`
}

// DisplayName returns the full name, or the email when no name is stored.
func (r Reviewer) DisplayName() string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name == "" {
		return r.Email
	}
	return name
}
