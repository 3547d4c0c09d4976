package useradmin

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the account's role
type UserRole = string

const (
	// RoleGuest is the role every self-registered account starts with
	RoleGuest UserRole = "guest"
	// RoleMember is a confirmed, promoted account
	RoleMember UserRole = "member"
	// RoleAdmin administers other accounts
	RoleAdmin UserRole = "admin"
)

// Account is the persisted user record. Name and Email are unique; the
// uniqueness is enforced by pre-insert lookups in the workflow engine, the
// store only carries the constraint as a schema hint.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Salt          string     `bun:"salt" json:"-"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	Active        bool       `bun:"active,notnull,default:false" json:"active,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// MessageKind classifies a user-facing message
type MessageKind string

const (
	// MessageDanger is an error shown to the user
	MessageDanger MessageKind = "danger"
	// MessageSuccess is a confirmation shown to the user
	MessageSuccess MessageKind = "success"
)

// Message is a short-lived notification. Messages queued behind a redirect
// travel through the session flash queue and are drained exactly once.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// Danger creates a danger message
func Danger(text string) Message {
	return Message{Kind: MessageDanger, Text: text}
}

// Success creates a success message
func Success(text string) Message {
	return Message{Kind: MessageSuccess, Text: text}
}

// Section is the resolved logical page for a request
type Section string

const (
	// SectionNone is the explicit "nothing to show" state
	SectionNone Section = ""
	// SectionLogin renders the login form
	SectionLogin Section = "login"
	// SectionRegistration renders the sign-up form
	SectionRegistration Section = "registration"
	// SectionUser renders the private area
	SectionUser Section = "user"
	// SectionLogout has no view of its own, visiting it runs the logout action
	SectionLogout Section = "logout"
)

// ParseSection maps a sanitized page name onto a known section. Unknown names
// resolve to SectionNone rather than an error.
func ParseSection(name string) Section {
	switch Section(name) {
	case SectionLogin, SectionRegistration, SectionUser, SectionLogout:
		return Section(name)
	default:
		return SectionNone
	}
}
