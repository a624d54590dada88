package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nkaddour/ttc/internal/domain"
	"github.com/nkaddour/ttc/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps the credential in pass(1) under a fixed entry name.
type Store struct {
	key string
	run runFunc
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(key string) *Store {
	return &Store{key: key, run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, token+"\n", "insert", "-m", "-f", s.key)
	if err != nil {
		return formatError("put", s.key, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", s.key)
	if err != nil {
		if strings.Contains(stderr, "is not in the password store") {
			return "", fmt.Errorf("%w: pass entry %q", domain.ErrCredentialNotFound, s.key)
		}
		return "", formatError("get", s.key, err, stderr)
	}

	stdout = strings.TrimSuffix(stdout, "\n")
	stdout = strings.TrimSuffix(stdout, "\r")
	if stdout == "" {
		return "", fmt.Errorf("%w: pass entry %q is empty", domain.ErrCredentialNotFound, s.key)
	}

	return stdout, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "-f", s.key)
	if err != nil {
		// No pass binary means no entry to remove.
		if errors.Is(err, ErrUnavailable) || strings.Contains(stderr, "is not in the password store") {
			return nil
		}
		return formatError("clear", s.key, err, stderr)
	}

	return nil
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, key string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
}
