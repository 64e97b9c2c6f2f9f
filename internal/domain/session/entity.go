// internal/domain/session/entity.go
package session

import (
	"time"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// Role represents a user role
type Role string

const (
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// ParseRole validates a role value from the persisted or auth record. The
// value is an unconstrained string on the wire; anything outside the known
// set is an UnknownRole error, never a silent default.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleStaff:
		return RoleStaff, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", apperrors.Newf(apperrors.CodeUnknownRole, "Unknown role %q", value)
	}
}

// Session represents the active user session, persisted across restarts.
// At most one row exists at any time.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    int64     `gorm:"not null" json:"user_id"`
	Username  string    `gorm:"not null;size:150" json:"username"`
	Role      Role      `gorm:"not null;size:20" json:"role"`
	Token     string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// TableName overrides the table name
func (Session) TableName() string {
	return "sessions"
}

// IsAdmin reports whether the session carries the ADMIN role
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
