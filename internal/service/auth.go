package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/codepad-server/internal/auth"
	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/metrics"
	"github.com/dtroode/codepad-server/internal/model"
)

// ErrFederationDisabled is returned when no identity provider is configured.
var ErrFederationDisabled = errors.New("federated sign-in is not configured")

// dummyHash is verified against when the account does not exist, so that unknown
// emails and wrong passwords take comparable time.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=1$c29tZXNhbHRzb21lc2FsdA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// OTPVerifier gates registration on a verified email.
type OTPVerifier interface {
	Verify(ctx context.Context, sessionID, email, code string) error
}

// Auth creates accounts and converges both sign-in methods on a model.Identity.
type Auth struct {
	userStore model.UserStore
	otp       OTPVerifier
	hasher    model.PasswordHasher
	provider  model.IdentityProvider
	logger    *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewAuth creates the service. provider may be nil when federated sign-in is disabled.
func NewAuth(
	userStore model.UserStore,
	otp OTPVerifier,
	hasher model.PasswordHasher,
	provider model.IdentityProvider,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Auth {
	return &Auth{
		userStore: userStore,
		otp:       otp,
		hasher:    hasher,
		provider:  provider,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Register verifies the session's OTP for the email and creates a local account.
func (a *Auth) Register(ctx context.Context, sessionID string, params model.RegisterParams) (identity model.Identity, err error) {
	defer func() {
		a.metrics.AuthRegistrationsTotal.WithLabelValues("password", metrics.Result(err)).Inc()
	}()

	email := NormalizeEmail(params.Email)
	a.logger.Debug("Auth service: starting user registration",
		"email", email,
		"session_id", sessionID)

	if err = a.otp.Verify(ctx, sessionID, email, params.OTP); err != nil {
		a.logger.Info("Auth service: verification code rejected",
			"email", email,
			"error", err.Error())
		return model.Identity{}, err
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.createUser(ctx, email, strings.TrimSpace(params.Name), hash)
	if err != nil {
		return model.Identity{}, err
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"email", email,
		"user_id", user.ID)

	return model.NewIdentity(user), nil
}

// Authenticate resolves a credential to an identity. Every failure of a password
// credential is reported as model.ErrInvalidCredentials.
func (a *Auth) Authenticate(ctx context.Context, credential model.Credential) (identity model.Identity, err error) {
	switch c := credential.(type) {
	case model.PasswordCredential:
		defer func() {
			a.metrics.AuthLoginsTotal.WithLabelValues("password", metrics.Result(err)).Inc()
		}()
		return a.authenticatePassword(ctx, c)
	case model.FederatedCredential:
		defer func() {
			a.metrics.AuthLoginsTotal.WithLabelValues("google", metrics.Result(err)).Inc()
		}()
		return a.authenticateFederated(ctx, c)
	default:
		return model.Identity{}, model.ErrUnsupportedCredential
	}
}

// FederatedLoginURL returns the provider consent URL for state.
func (a *Auth) FederatedLoginURL(state string) (string, error) {
	if a.provider == nil {
		return "", ErrFederationDisabled
	}
	return a.provider.AuthCodeURL(state), nil
}

// Resolve returns the identity signed in on the session, or nil for anonymous
// sessions and sessions whose user no longer exists.
func (a *Auth) Resolve(ctx context.Context, session model.Session) (*model.Identity, error) {
	if !session.Authenticated() {
		return nil, nil
	}

	user, err := a.userStore.GetByID(ctx, session.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	identity := model.NewIdentity(user)
	return &identity, nil
}

func (a *Auth) authenticatePassword(ctx context.Context, c model.PasswordCredential) (model.Identity, error) {
	email := NormalizeEmail(c.Email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		_, _ = a.hasher.Verify(c.Password, dummyHash)
		a.logger.Info("Auth service: login for unknown email",
			"email", email)
		return model.Identity{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	ok, err := a.hasher.Verify(c.Password, user.PasswordHash)
	if err != nil {
		a.logger.Error("Auth service: failed to verify password",
			"user_id", user.ID,
			"error", err.Error())
		return model.Identity{}, model.ErrInvalidCredentials
	}
	if !ok {
		a.logger.Info("Auth service: wrong password",
			"user_id", user.ID)
		return model.Identity{}, model.ErrInvalidCredentials
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID,
		"method", "password")

	return model.NewIdentity(user), nil
}

// authenticateFederated exchanges the code and matches the account by email,
// provisioning one with a random password on first login.
func (a *Auth) authenticateFederated(ctx context.Context, c model.FederatedCredential) (model.Identity, error) {
	if a.provider == nil {
		return model.Identity{}, ErrFederationDisabled
	}

	profile, err := a.provider.Exchange(ctx, c.Code)
	if err != nil {
		a.logger.Error("Auth service: federated exchange failed",
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to exchange federated credential: %w", err)
	}

	email := NormalizeEmail(profile.Email)
	user, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user logged in",
			"user_id", user.ID,
			"method", "google")
		return model.NewIdentity(user), nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Identity{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	password, err := auth.RandomPassword()
	if err != nil {
		return model.Identity{}, err
	}
	hash, err := a.hasher.Hash(password)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err = a.createUser(ctx, email, profile.Name, hash)
	if errors.Is(err, model.ErrDuplicateIdentity) {
		// Lost a race with a concurrent first login for the same email.
		user, err = a.userStore.GetByEmail(ctx, email)
	}
	if err != nil {
		return model.Identity{}, err
	}

	a.metrics.AuthRegistrationsTotal.WithLabelValues("google", "success").Inc()
	a.logger.Info("Auth service: federated account provisioned",
		"user_id", user.ID,
		"email", email)

	return model.NewIdentity(user), nil
}

func (a *Auth) createUser(ctx context.Context, email, name, hash string) (model.User, error) {
	now := a.now().UTC()

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrDuplicateIdentity) {
		return model.User{}, model.ErrDuplicateIdentity
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
