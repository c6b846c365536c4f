// Package credstore persists the opaque bearer credential. A missing
// credential is a valid logged-out state, never an error. The store is
// injected everywhere the credential is needed so tests can substitute the
// in-memory implementation.
package credstore

import "context"

type Store interface {
	Save(ctx context.Context, token string) error
	// Read returns the stored token, or "" when none is stored.
	Read(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
