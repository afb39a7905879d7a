package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SnippetStore defines persistence operations for code snippets.
type SnippetStore interface {
	Get(ctx context.Context, id string) (Snippet, error)
	// Upsert replaces the code of an existing snippet or creates it with the
	// given owner and creation time. The owner of an existing row is never changed.
	Upsert(ctx context.Context, snippet Snippet) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error)
	DeleteAnonymousCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteOwnedCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Snippet represents a stored piece of code. A nil OwnerID means the snippet is anonymous.
type Snippet struct {
	ID        string
	Code      string
	OwnerID   *uuid.UUID
	CreatedAt time.Time
}

// Anonymous reports whether the snippet has no owner.
func (s Snippet) Anonymous() bool {
	return s.OwnerID == nil
}
