package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/codepad-server/internal/model"
)

var _ model.SnippetStore = (*SnippetRepository)(nil)

type SnippetRepository struct {
	db *Connection
}

func NewSnippetRepository(db *Connection) *SnippetRepository {
	return &SnippetRepository{
		db: db,
	}
}

func (r *SnippetRepository) Get(ctx context.Context, id string) (model.Snippet, error) {
	var snippet model.Snippet
	query := `SELECT id, code, owner_id, created_at FROM snippets WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&snippet.ID, &snippet.Code, &snippet.OwnerID, &snippet.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Snippet{}, model.ErrNotFound
		}
		return model.Snippet{}, fmt.Errorf("failed to get snippet: %w", err)
	}

	return snippet, nil
}

// Upsert writes the snippet code. Owner and creation time are only taken on insert,
// so an existing row keeps its original owner and retention clock.
func (r *SnippetRepository) Upsert(ctx context.Context, snippet model.Snippet) error {
	query := `INSERT INTO snippets (id, code, owner_id, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code`

	_, err := r.db.Exec(ctx, query, snippet.ID, snippet.Code, snippet.OwnerID, snippet.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert snippet: %w", err)
	}

	return nil
}

func (r *SnippetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	query := `SELECT id FROM snippets WHERE owner_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan snippet ids: %w", err)
	}

	return ids, nil
}

func (r *SnippetRepository) DeleteAnonymousCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM snippets WHERE owner_id IS NULL AND created_at <= $1`

	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired anonymous snippets: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *SnippetRepository) DeleteOwnedCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM snippets WHERE owner_id IS NOT NULL AND created_at <= $1`

	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired owned snippets: %w", err)
	}

	return tag.RowsAffected(), nil
}
