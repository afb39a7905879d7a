package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/metrics"
	"github.com/dtroode/codepad-server/internal/model"
)

const (
	// SnippetIDBytes is the number of random bytes in a generated snippet id (8 hex characters).
	SnippetIDBytes = 4
	// maxIDAttempts bounds retries when a generated id is already taken.
	maxIDAttempts = 5
)

var snippetIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateSnippetID reports whether id may be used as a snippet key.
func ValidateSnippetID(id string) error {
	if !snippetIDPattern.MatchString(id) {
		return model.ErrInvalidSnippetID
	}
	return nil
}

type Editor struct {
	snippetStore model.SnippetStore
	logger       *logger.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
	newID        func() (string, error)
}

func NewEditor(
	snippetStore model.SnippetStore,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Editor {
	return &Editor{
		snippetStore: snippetStore,
		logger:       logger,
		metrics:      metrics,
		now:          time.Now,
		newID:        randomSnippetID,
	}
}

// CreateNew returns a fresh snippet id. No row is written until the first save.
func (s *Editor) CreateNew(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("failed to generate snippet id: %w", err)
		}

		_, err = s.snippetStore.Get(ctx, id)
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debug("Editor service: new snippet id generated",
				"snippet_id", id)
			return id, nil
		}
		if err != nil {
			s.logger.Error("Editor service: failed to check snippet id",
				"snippet_id", id,
				"error", err.Error())
			return "", fmt.Errorf("failed to check snippet id: %w", err)
		}
	}

	return "", fmt.Errorf("failed to generate unused snippet id after %d attempts", maxIDAttempts)
}

// Autosave writes code under id. The owner is the identity when present and is
// recorded only when the snippet is first created.
func (s *Editor) Autosave(ctx context.Context, id, code string, identity *model.Identity) error {
	if err := ValidateSnippetID(id); err != nil {
		return err
	}
	// Postgres TEXT cannot store NUL.
	if strings.ContainsRune(code, 0) {
		return model.ErrInvalidCode
	}

	snippet := model.Snippet{
		ID:        id,
		Code:      code,
		CreatedAt: s.now().UTC(),
	}
	ownerLabel := "anonymous"
	if identity != nil {
		ownerID := identity.UserID
		snippet.OwnerID = &ownerID
		ownerLabel = "owned"
	}

	err := s.snippetStore.Upsert(ctx, snippet)
	s.metrics.SnippetSavesTotal.WithLabelValues(ownerLabel, metrics.Result(err)).Inc()
	if err != nil {
		s.logger.Error("Editor service: failed to save snippet",
			"snippet_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to save snippet: %w", err)
	}

	s.logger.Debug("Editor service: snippet saved",
		"snippet_id", id,
		"owner", ownerLabel,
		"size", len(code))

	return nil
}

// Load returns the code stored under id, or empty content when nothing has been saved yet.
func (s *Editor) Load(ctx context.Context, id string) (string, error) {
	if err := ValidateSnippetID(id); err != nil {
		return "", err
	}

	snippet, err := s.snippetStore.Get(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		s.logger.Error("Editor service: failed to load snippet",
			"snippet_id", id,
			"error", err.Error())
		return "", fmt.Errorf("failed to load snippet: %w", err)
	}

	return snippet.Code, nil
}

// ListMine returns the ids of snippets owned by identity.
func (s *Editor) ListMine(ctx context.Context, identity *model.Identity) ([]string, error) {
	if identity == nil {
		return nil, model.ErrAuthenticationRequired
	}

	ids, err := s.snippetStore.ListByOwner(ctx, identity.UserID)
	if err != nil {
		s.logger.Error("Editor service: failed to list snippets",
			"user_id", identity.UserID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}

	return ids, nil
}

func randomSnippetID() (string, error) {
	buf := make([]byte, SnippetIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
