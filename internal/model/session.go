package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-visitor state carried in the session cookie.
type Session struct {
	ID     string
	UserID uuid.UUID
}

// Authenticated reports whether a user is signed in on the session.
func (s Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// NewAnonymousSession creates a session without an identity.
func NewAnonymousSession() Session {
	return Session{ID: uuid.NewString()}
}

// SessionManager signs and verifies session tokens.
type SessionManager interface {
	Generate(session Session) (string, error)
	Parse(token string) (Session, error)
	TTL() time.Duration
}
