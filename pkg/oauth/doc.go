// Package oauth implements the provider-facing half of the OAuth 2.0
// authorization-code flow: building authorization URLs, exchanging codes
// for tokens, and normalizing provider profiles into one shape.
//
// Google and GitHub are configured out of the box:
//
//	m := oauth.New(map[string]oauth.ProviderConfig{
//		"google": {ClientID: id, ClientSecret: secret, RedirectURI: uri},
//	})
//	url, err := m.AuthURL("google", state)
//	tokens, err := m.ExchangeCode(ctx, "google", code)
//	profile, err := m.FetchProfile(ctx, "google", tokens.AccessToken)
//
// ValidateState compares the redirect state parameter for the CSRF
// defense, and LinkAccount enforces the email-conflict policy: an email
// that already belongs to a local account blocks automatic account
// creation instead of silently linking.
package oauth
