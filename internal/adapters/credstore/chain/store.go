package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/nkaddour/ttc/internal/adapters/credstore/file"
	passstore "github.com/nkaddour/ttc/internal/adapters/credstore/pass"
	"github.com/nkaddour/ttc/internal/ports"
)

// Store tries a primary credential backend and falls back to a second one.
// Both failing combines the errors with %w so sentinel checks (notably
// domain.ErrCredentialNotFound) still hold through the chain.
type Store struct {
	primary  ports.CredentialStore
	fallback ports.CredentialStore
}

var _ ports.CredentialStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary credential store is nil")
	errNilFallbackStore = errors.New("fallback credential store is nil")
)

func NewStore(primary ports.CredentialStore, fallback ports.CredentialStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewPassFirstWithFileFallback prefers pass(1) and falls back to a plain
// credential file when pass is unavailable.
func NewPassFirstWithFileFallback(passKey string, filePath string) (*Store, error) {
	return NewStore(passstore.NewStore(passKey), filestore.NewStore(filePath))
}

func (s *Store) Put(ctx context.Context, token string) error {
	err := s.primary.Put(ctx, token)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, token)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context) (string, error) {
	token, err := s.primary.Get(ctx)
	if err == nil {
		return token, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackToken, fallbackErr := s.fallback.Get(ctx)
	if fallbackErr == nil {
		return fallbackToken, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Clear(ctx context.Context) error {
	err := s.primary.Clear(ctx)
	if shouldSkipFallback(err) {
		return err
	}

	// Clear both backends so an invalidated credential cannot resurface
	// from whichever copy survived.
	fallbackErr := s.fallback.Clear(ctx)
	if err == nil && fallbackErr == nil {
		return nil
	}
	if err != nil && fallbackErr != nil {
		return fmt.Errorf("primary backend clear failed: %w; fallback backend clear failed: %w", err, fallbackErr)
	}
	if err != nil {
		return fmt.Errorf("primary backend clear failed: %w", err)
	}
	return fmt.Errorf("fallback backend clear failed: %w", fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
