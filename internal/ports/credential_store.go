package ports

import "context"

// CredentialStore persists the single bearer credential slot.
//
// The session service is the only writer; the request pipeline reads the
// slot before every call and clears it when the backend invalidates it.
// Get returns an error wrapping domain.ErrCredentialNotFound when the slot
// is empty. Clear is a no-op on an empty slot.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Put(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
