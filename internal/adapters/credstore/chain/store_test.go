package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nkaddour/ttc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	token    string
	getErr   error
	putErr   error
	clearErr error

	gets   int
	puts   int
	clears int
}

func (f *fakeStore) Get(ctx context.Context) (string, error) {
	f.gets++
	return f.token, f.getErr
}

func (f *fakeStore) Put(ctx context.Context, token string) error {
	f.puts++
	if f.putErr == nil {
		f.token = token
	}
	return f.putErr
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.clears++
	if f.clearErr == nil {
		f.token = ""
	}
	return f.clearErr
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := &fakeStore{token: "from-pass"}
	fallback := &fakeStore{token: "from-file"}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	token, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-pass", token)
	assert.Zero(t, fallback.gets)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := &fakeStore{getErr: errors.New("pass unavailable")}
	fallback := &fakeStore{token: "from-file"}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	token, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-file", token)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := &fakeStore{getErr: errors.New("pass failed")}
	fallback := &fakeStore{getErr: errors.New("file failed")}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	_, err = store.Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreGetKeepsCredentialNotFoundThroughTheChain(t *testing.T) {
	t.Parallel()

	primary := &fakeStore{getErr: fmt.Errorf("%w: pass entry", domain.ErrCredentialNotFound)}
	fallback := &fakeStore{getErr: fmt.Errorf("%w: file", domain.ErrCredentialNotFound)}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	_, err = store.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreGetSkipsFallbackOnContextCancellation(t *testing.T) {
	t.Parallel()

	primary := &fakeStore{getErr: context.Canceled}
	fallback := &fakeStore{token: "from-file"}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	_, err = store.Get(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fallback.gets)
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := &fakeStore{putErr: errors.New("pass failed")}
	fallback := &fakeStore{}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "tok-1"))
	assert.Equal(t, "tok-1", fallback.token)
}

func TestStoreClearClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary := &fakeStore{token: "tok-1"}
	fallback := &fakeStore{token: "tok-1"}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	require.NoError(t, store.Clear(context.Background()))
	assert.Equal(t, 1, primary.clears)
	assert.Equal(t, 1, fallback.clears)
	assert.Empty(t, primary.token)
	assert.Empty(t, fallback.token)
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, &fakeStore{})
	require.Error(t, err)

	_, err = NewStore(&fakeStore{}, nil)
	require.Error(t, err)
}
