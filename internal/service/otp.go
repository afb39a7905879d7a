package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/metrics"
	"github.com/dtroode/codepad-server/internal/model"
)

const (
	// OTPLength is the number of digits in a verification code.
	OTPLength = 6
	// challengeRetention keeps a challenge in the store past its validity window,
	// so that a late submission is reported as expired rather than missing.
	challengeRetention = 2
)

// OTP issues and verifies session-scoped email verification codes.
type OTP struct {
	challengeStore model.ChallengeStore
	userStore      model.UserStore
	mailer         model.Mailer
	ttl            time.Duration
	logger         *logger.Logger
	metrics        *metrics.Metrics
	now            func() time.Time
	generate       func() (string, error)
}

func NewOTP(
	challengeStore model.ChallengeStore,
	userStore model.UserStore,
	mailer model.Mailer,
	ttl time.Duration,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *OTP {
	return &OTP{
		challengeStore: challengeStore,
		userStore:      userStore,
		mailer:         mailer,
		ttl:            ttl,
		logger:         logger,
		metrics:        metrics,
		now:            time.Now,
		generate:       generateCode,
	}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Issue sends a fresh code to email and binds it to the session, replacing any
// previous challenge. The challenge is committed only after the mail is sent.
func (s *OTP) Issue(ctx context.Context, sessionID, email string) (err error) {
	defer func() {
		s.metrics.OTPIssuedTotal.WithLabelValues(issueResult(err)).Inc()
	}()

	email = NormalizeEmail(email)
	s.logger.Debug("OTP service: issuing verification code",
		"email", email,
		"session_id", sessionID)

	_, err = s.userStore.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("OTP service: email already registered",
			"email", email)
		return model.ErrDuplicateIdentity
	}
	if !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("OTP service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	challenge := model.Challenge{
		Email:    email,
		Code:     code,
		IssuedAt: s.now().UTC(),
	}

	message := model.Message{
		To:      email,
		Subject: "Your verification code",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(s.ttl.Minutes())),
	}
	if sendErr := s.mailer.Send(ctx, message); sendErr != nil {
		s.logger.Error("OTP service: failed to dispatch verification code",
			"email", email,
			"session_id", sessionID,
			"error", sendErr.Error())
		if delErr := s.challengeStore.Delete(ctx, sessionID); delErr != nil {
			s.logger.Error("OTP service: failed to clear previous challenge",
				"session_id", sessionID,
				"error", delErr.Error())
		}
		return fmt.Errorf("%w: %v", model.ErrDispatchFailure, sendErr)
	}

	if err = s.challengeStore.Put(ctx, sessionID, challenge, s.ttl*challengeRetention); err != nil {
		s.logger.Error("OTP service: failed to store challenge",
			"session_id", sessionID,
			"error", err.Error())
		if delErr := s.challengeStore.Delete(ctx, sessionID); delErr != nil {
			s.logger.Error("OTP service: failed to clear previous challenge",
				"session_id", sessionID,
				"error", delErr.Error())
		}
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	s.logger.Info("OTP service: verification code issued",
		"email", email,
		"session_id", sessionID)

	return nil
}

// Verify checks email and code against the session's challenge and consumes it on success.
func (s *OTP) Verify(ctx context.Context, sessionID, email, code string) (err error) {
	defer func() {
		s.metrics.OTPVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
	}()

	email = NormalizeEmail(email)

	challenge, err := s.challengeStore.Get(ctx, sessionID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNoChallenge
	}
	if err != nil {
		return fmt.Errorf("failed to get challenge: %w", err)
	}

	if s.now().Sub(challenge.IssuedAt) > s.ttl {
		if delErr := s.challengeStore.Delete(ctx, sessionID); delErr != nil {
			s.logger.Error("OTP service: failed to clear expired challenge",
				"session_id", sessionID,
				"error", delErr.Error())
		}
		return model.ErrOTPExpired
	}
	if challenge.Email != email {
		return model.ErrEmailMismatch
	}
	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(strings.TrimSpace(code))) != 1 {
		return model.ErrOTPMismatch
	}

	if err = s.challengeStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to consume challenge: %w", err)
	}

	s.logger.Info("OTP service: verification code accepted",
		"email", email,
		"session_id", sessionID)

	return nil
}

func generateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < OTPLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

func issueResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrDuplicateIdentity):
		return "duplicate"
	case errors.Is(err, model.ErrDispatchFailure):
		return "dispatch_failure"
	default:
		return "error"
	}
}

func verifyResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrNoChallenge):
		return "no_challenge"
	case errors.Is(err, model.ErrOTPExpired):
		return "expired"
	case errors.Is(err, model.ErrEmailMismatch):
		return "email_mismatch"
	case errors.Is(err, model.ErrOTPMismatch):
		return "mismatch"
	default:
		return "error"
	}
}
