package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/codepad-server/internal/model"
)

var _ model.ChallengeStore = (*ChallengeStore)(nil)

// ChallengeStore keeps OTP challenges in redis as JSON values with a key TTL.
type ChallengeStore struct {
	client redis.UniversalClient
	prefix string
}

// NewChallengeStore creates a store using keys of the form "<prefix>:otp:<session id>".
func NewChallengeStore(client redis.UniversalClient, prefix string) *ChallengeStore {
	return &ChallengeStore{
		client: client,
		prefix: prefix,
	}
}

func (s *ChallengeStore) key(sessionID string) string {
	return fmt.Sprintf("%s:otp:%s", s.prefix, sessionID)
}

func (s *ChallengeStore) Put(ctx context.Context, sessionID string, challenge model.Challenge, ttl time.Duration) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	return nil
}

func (s *ChallengeStore) Get(ctx context.Context, sessionID string) (model.Challenge, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Challenge{}, model.ErrNotFound
		}
		return model.Challenge{}, fmt.Errorf("failed to get challenge: %w", err)
	}

	var challenge model.Challenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return model.Challenge{}, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	return challenge, nil
}

func (s *ChallengeStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}

	return nil
}

// Ping checks the redis connection.
func (s *ChallengeStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
