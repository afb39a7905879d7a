package model

import (
	"context"
	"time"
)

// ChallengeStore keeps at most one OTP challenge per session.
type ChallengeStore interface {
	// Put stores the challenge for the session, replacing any previous one.
	Put(ctx context.Context, sessionID string, challenge Challenge, ttl time.Duration) error
	// Get returns ErrNotFound when the session has no challenge.
	Get(ctx context.Context, sessionID string) (Challenge, error)
	Delete(ctx context.Context, sessionID string) error
}

// Challenge is a pending email verification bound to a session.
type Challenge struct {
	Email    string    `json:"email"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}

// Mailer dispatches outgoing email.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}

// Message is an outgoing email.
type Message struct {
	To      string
	Subject string
	Body    string
}
