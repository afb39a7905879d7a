package federation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	googleOAuth2 "golang.org/x/oauth2/google"

	"github.com/dtroode/codepad-server/internal/model"
)

// GoogleUserInfoEndpoint is the OpenID Connect userinfo endpoint.
const GoogleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

var (
	ErrProviderMisconfigured = errors.New("identity provider is not configured")
	ErrEmailNotVerified      = errors.New("identity provider did not return a verified email")
)

var _ model.IdentityProvider = (*GoogleProvider)(nil)

// GoogleProvider runs the Google authorization-code flow.
type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// Option configures a GoogleProvider.
type Option func(*GoogleProvider)

// WithEndpoint overrides the OAuth2 endpoints and the userinfo URL.
func WithEndpoint(endpoint oauth2.Endpoint, userInfoURL string) Option {
	return func(g *GoogleProvider) {
		g.config.Endpoint = endpoint
		g.userInfoURL = userInfoURL
	}
}

// WithHTTPClient sets the HTTP client used for the token exchange and userinfo calls.
func WithHTTPClient(client *http.Client) Option {
	return func(g *GoogleProvider) {
		g.httpClient = client
	}
}

// NewGoogleProvider creates a provider requesting the openid, email and profile scopes.
func NewGoogleProvider(clientID, clientSecret, redirectURL string, opts ...Option) (*GoogleProvider, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrProviderMisconfigured
	}

	g := &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"openid",
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: googleOAuth2.Endpoint,
		},
		userInfoURL: GoogleUserInfoEndpoint,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// AuthCodeURL returns the consent page URL carrying state.
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for a token and fetches the user's email and name.
func (g *GoogleProvider) Exchange(ctx context.Context, code string) (model.FederatedProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return model.FederatedProfile{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	resp, err := g.config.Client(ctx, token).Get(g.userInfoURL)
	if err != nil {
		return model.FederatedProfile{}, fmt.Errorf("failed to get user info from Google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return model.FederatedProfile{}, fmt.Errorf("failed to fetch user info from Google: status %d, body: %s", resp.StatusCode, string(body))
	}

	var info struct {
		Sub           string `json:"sub"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return model.FederatedProfile{}, fmt.Errorf("failed to unmarshal Google user info: %w", err)
	}

	if info.Email == "" || !info.EmailVerified {
		return model.FederatedProfile{}, ErrEmailNotVerified
	}

	name := info.Name
	if name == "" {
		name, _, _ = strings.Cut(info.Email, "@")
	}

	return model.FederatedProfile{Email: info.Email, Name: name}, nil
}
