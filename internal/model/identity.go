package model

import (
	"context"

	"github.com/google/uuid"
)

// Identity is an authenticated user, independent of how they signed in.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// NewIdentity builds an Identity from a stored user.
func NewIdentity(user User) Identity {
	return Identity{UserID: user.ID, Email: user.Email, Name: user.Name}
}

// Credential is proof of identity presented at sign-in.
// It is implemented by PasswordCredential and FederatedCredential only.
type Credential interface {
	credential()
}

// PasswordCredential is an email and password pair checked against the stored hash.
type PasswordCredential struct {
	Email    string
	Password string
}

func (PasswordCredential) credential() {}

// FederatedCredential is an authorization code returned by the identity provider.
type FederatedCredential struct {
	Code string
}

func (FederatedCredential) credential() {}

// FederatedProfile is what the identity provider reports about the user.
type FederatedProfile struct {
	Email string
	Name  string
}

// IdentityProvider runs the authorization-code flow against an external provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (FederatedProfile, error)
}
