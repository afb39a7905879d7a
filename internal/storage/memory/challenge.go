package memory

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/dtroode/codepad-server/internal/model"
)

var _ model.ChallengeStore = (*ChallengeStore)(nil)

// ChallengeStore keeps OTP challenges in process memory, keyed by session id.
type ChallengeStore struct {
	cache *ttlcache.Cache[string, model.Challenge]
}

// NewChallengeStore creates a store and starts its expiry loop. Call Close to stop it.
func NewChallengeStore() *ChallengeStore {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, model.Challenge](),
	)

	go cache.Start()

	return &ChallengeStore{cache: cache}
}

func (s *ChallengeStore) Put(_ context.Context, sessionID string, challenge model.Challenge, ttl time.Duration) error {
	s.cache.Set(sessionID, challenge, ttl)
	return nil
}

func (s *ChallengeStore) Get(_ context.Context, sessionID string) (model.Challenge, error) {
	item := s.cache.Get(sessionID)
	if item == nil {
		return model.Challenge{}, model.ErrNotFound
	}

	return item.Value(), nil
}

func (s *ChallengeStore) Delete(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}

// Len returns the number of live challenges.
func (s *ChallengeStore) Len() int {
	return s.cache.Len()
}

// Close stops the expiry loop.
func (s *ChallengeStore) Close() error {
	s.cache.Stop()
	return nil
}
