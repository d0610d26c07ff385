package oauth

import "context"

// AccountStore is the minimal user-store surface LinkAccount needs.
type AccountStore interface {
	// FindUserIDByEmail returns the id of the user owning the email, or
	// found=false when no such user exists.
	FindUserIDByEmail(ctx context.Context, email string) (id string, found bool, err error)
	// CreateUser creates a new user from an OAuth profile and returns its id.
	CreateUser(ctx context.Context, provider string, profile Profile) (id string, err error)
}

// LinkAccount applies the account-creation policy for OAuth sign-in:
// the existing-email check always runs before account creation, regardless
// of provider. If the profile email already belongs to an account, automatic
// creation is blocked with ErrEmailAlreadyRegistered and the caller must run
// an explicit linking flow instead.
func LinkAccount(ctx context.Context, store AccountStore, provider string, profile Profile) (string, error) {
	if _, found, err := store.FindUserIDByEmail(ctx, profile.Email); err != nil {
		return "", err
	} else if found {
		return "", ErrEmailAlreadyRegistered
	}

	return store.CreateUser(ctx, provider, profile)
}
