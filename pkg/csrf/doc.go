// Package csrf generates and validates expiring CSRF tokens.
//
// Tokens are 32 random bytes hex-encoded (64 characters) with an expiry
// window, validated by constant-time comparison:
//
//	gen := csrf.NewGenerator(time.Hour)
//	token, err := gen.Generate()
//	ok := csrf.Validate(received, token.Value)
//	if csrf.IsExpired(token.ExpiresAt) { /* re-issue */ }
package csrf
