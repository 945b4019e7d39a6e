package user

import "context"

type RosterService interface {
	// Refresh reloads the cached roster of the default backend. On failure
	// the previous roster is kept.
	Refresh(ctx context.Context) error
	// Lookup resolves an email against the roster served at baseURL, or the
	// default backend when baseURL is empty.
	Lookup(ctx context.Context, baseURL, email string) (Identity, error)
}
