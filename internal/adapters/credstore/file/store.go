package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nkaddour/ttc/internal/domain"
	"github.com/nkaddour/ttc/internal/ports"
)

const (
	storeDirMode       = 0o700
	credentialFileMode = 0o600
)

// Store keeps the bearer credential in a single file under the user's
// config directory.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) Put(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("credential is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), storeDirMode); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(token), credentialFileMode); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrCredentialNotFound, s.path)
		}
		return "", fmt.Errorf("read credential file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", domain.ErrCredentialNotFound, s.path)
	}

	return token, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credential file: %w", err)
	}

	return nil
}
