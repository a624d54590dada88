package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/nkaddour/ttc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		key: "ttc/token",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", "ttc/token"}, args)
			assert.Equal(t, "tok-1\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		key: "ttc/token",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "ttc/token"}, args)
			assert.Empty(t, input)
			return "tok-1\n", "", nil
		},
	}

	value, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", value)
}

func TestStoreGetMapsMissingEntryToCredentialNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		key: "ttc/token",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "ttc/token is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreClearUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		key: "ttc/token",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "ttc/token"}, args)
			return "", "", nil
		},
	}

	require.NoError(t, store.Clear(context.Background()))
}

func TestStoreClearIsIdempotentWhenEntryMissing(t *testing.T) {
	t.Parallel()

	store := &Store{
		key: "ttc/token",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "ttc/token is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Clear(context.Background()))
}

func TestStoreClearSucceedsWhenPassUnavailable(t *testing.T) {
	t.Parallel()

	store := &Store{
		key: "ttc/token",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "", ErrUnavailable
		},
	}

	require.NoError(t, store.Clear(context.Background()))
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		key: "ttc/token",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "gpg: decryption failed")
}
