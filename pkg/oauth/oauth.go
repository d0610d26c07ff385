package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// userAgent is sent to providers that require one (GitHub rejects
// anonymous API clients).
const userAgent = "gatekit-oauth"

// ProviderConfig holds the client credentials for one OAuth provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoint overrides for tests; empty values use the provider defaults.
	AuthURL    string
	TokenURL   string
	ProfileURL string
}

// Tokens is the provider token-endpoint response.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type,omitempty"`
}

// Profile is the normalized user profile shared across providers.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Manager performs the OAuth authorization-code flow against configured
// providers and normalizes provider-specific responses.
type Manager struct {
	providers map[string]ProviderConfig
	client    *http.Client
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient sets the HTTP client used for token and profile calls.
// The caller's client controls timeouts and cancellation.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		if client != nil {
			m.client = client
		}
	}
}

// New creates an OAuth manager with the given provider configurations,
// keyed by provider name ("google", "github").
func New(providers map[string]ProviderConfig, opts ...Option) *Manager {
	m := &Manager{
		providers: providers,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AuthURL builds the provider authorization URL carrying the CSRF state.
func (m *Manager) AuthURL(provider, state string) (string, error) {
	cfg, ok := m.providers[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrProviderNotConfigured, provider)
	}

	base := cfg.AuthURL
	if base == "" {
		base = defaultAuthURLs[provider]
	}
	if base == "" {
		return "", fmt.Errorf("%w: %q", ErrProviderNotSupported, provider)
	}

	scope := defaultScopes[provider]
	if scope == "" {
		scope = "openid email"
	}

	params := url.Values{
		"client_id":     {cfg.ClientID},
		"redirect_uri":  {cfg.RedirectURI},
		"scope":         {scope},
		"state":         {state},
		"response_type": {"code"},
	}

	return base + "?" + params.Encode(), nil
}

// ValidateState compares the state echoed back by the provider against the
// one issued at redirect time. Exact equality; this is the CSRF defense for
// the OAuth callback step.
func ValidateState(received, expected string) bool {
	return received != "" && received == expected
}

// ExchangeCode trades an authorization code for provider tokens.
func (m *Manager) ExchangeCode(ctx context.Context, provider, code string) (Tokens, error) {
	cfg, ok := m.providers[provider]
	if !ok {
		return Tokens{}, fmt.Errorf("%w: %q", ErrProviderNotConfigured, provider)
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURLs[provider]
	}
	if tokenURL == "" {
		return Tokens{}, fmt.Errorf("%w: %q", ErrProviderNotSupported, provider)
	}

	form := url.Values{
		"client_id":     {cfg.ClientID},
		"client_secret": {cfg.ClientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {cfg.RedirectURI},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Tokens{}, &ExchangeError{Provider: provider, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return Tokens{}, &ExchangeError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Tokens{}, &ExchangeError{Provider: provider, Status: resp.Status}
	}

	var tokens Tokens
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&tokens); err != nil {
		return Tokens{}, &ExchangeError{Provider: provider, Err: err}
	}

	return tokens, nil
}

// FetchProfile retrieves the user profile and normalizes provider-specific
// field names into the shared Profile shape.
func (m *Manager) FetchProfile(ctx context.Context, provider, accessToken string) (Profile, error) {
	cfg, ok := m.providers[provider]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrProviderNotConfigured, provider)
	}

	profileURL := cfg.ProfileURL
	if profileURL == "" {
		profileURL = defaultProfileURLs[provider]
	}
	if profileURL == "" {
		return Profile{}, fmt.Errorf("%w: %q", ErrProviderNotSupported, provider)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return Profile{}, &ProfileError{Provider: provider, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if provider == "github" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return Profile{}, &ProfileError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Profile{}, &ProfileError{Provider: provider, Status: resp.Status}
	}

	var raw map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&raw); err != nil {
		return Profile{}, &ProfileError{Provider: provider, Err: err}
	}

	return normalizeProfile(provider, raw)
}

// normalizeProfile maps provider-specific profile fields into Profile.
func normalizeProfile(provider string, raw map[string]any) (Profile, error) {
	switch provider {
	case "google":
		return Profile{
			ID:      stringField(raw, "id"),
			Email:   stringField(raw, "email"),
			Name:    stringField(raw, "name"),
			Picture: stringField(raw, "picture"),
		}, nil
	case "github":
		return Profile{
			ID:      stringField(raw, "id"),
			Email:   stringField(raw, "email"),
			Name:    stringField(raw, "name"),
			Picture: stringField(raw, "avatar_url"),
		}, nil
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrProviderNotSupported, provider)
	}
}

// stringField extracts a field as string, converting JSON numbers
// (GitHub returns numeric ids).
func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

// oauthErrorMessages maps provider error codes to user-facing strings.
// Unknown codes fall through to a generic message so raw provider errors
// never leak to users.
var oauthErrorMessages = map[string]string{
	"access_denied":             "User denied access to their account",
	"invalid_request":           "Invalid OAuth request",
	"unauthorized_client":       "Unauthorized OAuth client",
	"unsupported_response_type": "Unsupported response type",
	"invalid_scope":             "Invalid OAuth scope requested",
	"server_error":              "OAuth server error",
	"temporarily_unavailable":   "OAuth service temporarily unavailable",
}

// ErrorMessage maps an OAuth error code from the provider callback to a
// stable human-readable message.
func ErrorMessage(code string) string {
	if msg, ok := oauthErrorMessages[code]; ok {
		return msg
	}
	return "Unknown OAuth error occurred"
}

var defaultAuthURLs = map[string]string{
	"google": "https://accounts.google.com/oauth/authorize",
	"github": "https://github.com/login/oauth/authorize",
}

var defaultTokenURLs = map[string]string{
	"google": "https://oauth2.googleapis.com/token",
	"github": "https://github.com/login/oauth/access_token",
}

var defaultProfileURLs = map[string]string{
	"google": "https://www.googleapis.com/oauth2/v2/userinfo",
	"github": "https://api.github.com/user",
}

var defaultScopes = map[string]string{
	"google": "openid email profile",
	"github": "user:email",
}
