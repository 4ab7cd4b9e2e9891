package users

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups that match no identity. Callers map it
// to the appropriate failure for their context (unknown subject, invalid
// credentials) so the store stays policy-free.
var ErrNotFound = errors.New("users: not found")

// Store is the user store contract consumed by the auth core.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	// Create persists a new identity. Fails with a DUPLICATE_EMAIL error on a
	// unique-constraint violation.
	Create(ctx context.Context, user *User) error
	// List returns all identities, newest first. Admin surface only.
	List(ctx context.Context) ([]User, error)
}
