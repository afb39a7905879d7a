package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/metrics"
	"github.com/dtroode/codepad-server/internal/model"
)

// RetentionPolicy configures the sweeper.
type RetentionPolicy struct {
	Interval     time.Duration
	AnonymousTTL time.Duration
	OwnedTTL     time.Duration
}

// SweepResult holds the number of snippets deleted by one sweep.
type SweepResult struct {
	Anonymous int64
	Owned     int64
}

var _ model.Worker = (*Sweeper)(nil)

// Sweeper periodically deletes snippets older than their retention window.
type Sweeper struct {
	snippetStore model.SnippetStore
	policy       RetentionPolicy
	logger       *logger.Logger
	metrics      *metrics.Metrics
	now          func() time.Time

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	initial sync.WaitGroup
}

func NewSweeper(
	snippetStore model.SnippetStore,
	policy RetentionPolicy,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Sweeper {
	return &Sweeper{
		snippetStore: snippetStore,
		policy:       policy,
		logger:       logger,
		metrics:      metrics,
		now:          time.Now,
	}
}

// RunOnce performs both deletions. A failure of one does not skip the other.
func (s *Sweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	now := s.now().UTC()
	var result SweepResult
	var errs []error

	anonymous, err := s.snippetStore.DeleteAnonymousCreatedBefore(ctx, now.Add(-s.policy.AnonymousTTL))
	if err != nil {
		s.metrics.SweepFailuresTotal.WithLabelValues("anonymous").Inc()
		errs = append(errs, fmt.Errorf("anonymous snippets: %w", err))
	} else {
		result.Anonymous = anonymous
		s.metrics.SnippetsSweptTotal.WithLabelValues("anonymous").Add(float64(anonymous))
	}

	owned, err := s.snippetStore.DeleteOwnedCreatedBefore(ctx, now.Add(-s.policy.OwnedTTL))
	if err != nil {
		s.metrics.SweepFailuresTotal.WithLabelValues("owned").Inc()
		errs = append(errs, fmt.Errorf("owned snippets: %w", err))
	} else {
		result.Owned = owned
		s.metrics.SnippetsSweptTotal.WithLabelValues("owned").Add(float64(owned))
	}

	return result, errors.Join(errs...)
}

// Start runs a sweep immediately and then on every interval until Stop.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return fmt.Errorf("sweeper already started")
	}
	if s.policy.Interval < time.Second {
		return fmt.Errorf("sweep interval %s is shorter than one second", s.policy.Interval)
	}

	ctx, cancel := context.WithCancel(ctx)
	cl := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	c.Schedule(cron.Every(s.policy.Interval), cron.FuncJob(func() { s.sweep(ctx) }))

	s.cron = c
	s.cancel = cancel

	s.logger.Info("Sweeper: starting",
		"interval", s.policy.Interval.String(),
		"anonymous_ttl", s.policy.AnonymousTTL.String(),
		"owned_ttl", s.policy.OwnedTTL.String())

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.sweep(ctx)
	}()
	c.Start()

	return nil
}

// Stop halts scheduling and waits for a running sweep, up to ctx's deadline.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	c, cancel := s.cron, s.cancel
	s.cron, s.cancel = nil, nil
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	cronDone := c.Stop()
	cancel()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.initial.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sweeper: stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to stop sweeper: %w", ctx.Err())
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	result, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("Sweeper: sweep failed, retrying on next tick",
			"error", err.Error())
	}
	if result.Anonymous > 0 || result.Owned > 0 {
		s.logger.Info("Sweeper: expired snippets deleted",
			"anonymous", result.Anonymous,
			"owned", result.Owned)
	}
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	logger *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("Sweeper: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("Sweeper: "+msg, append(keysAndValues, "error", err)...)
}
