package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// SessionStatus records how a planned practice went
type SessionStatus string

const (
	// StatusCompleted means the practice happened as planned
	StatusCompleted SessionStatus = "COMPLETED"
	// StatusPartial means the practice was cut short
	StatusPartial SessionStatus = "PARTIAL"
	// StatusSkipped means the practice did not happen
	StatusSkipped SessionStatus = "SKIPPED"
)

// ParseStatus maps free-form input onto a SessionStatus, case-insensitively
func ParseStatus(s string) (SessionStatus, error) {
	switch SessionStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusPartial:
		return StatusPartial, nil
	case StatusSkipped:
		return StatusSkipped, nil
	default:
		return "", fmt.Errorf("unknown session status: %q", s)
	}
}

// User is the user model. Email is stored as submitted; uniqueness and
// lookups fold to lower case so registrations differing only by case
// collapse onto one account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Name         string     `bun:"name,notnull" json:"name"`
	Email        string     `bun:"email,notnull" json:"email"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Session is one logged practice entry
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:ses"`

	ID        int64         `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64         `bun:"user_id,notnull" json:"user_id"`
	Status    SessionStatus `bun:"status,notnull" json:"status"`
	Date      time.Time     `bun:"date,notnull" json:"date"`
	Asana     string        `bun:"asana,notnull" json:"asana"`
	CreatedAt *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
