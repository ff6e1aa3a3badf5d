package file_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/gateway/adapters/storage/file"
	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/ports/storage"
)

func newTestStore(t *testing.T) (*file.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session", "tokens.json")
	return file.NewStore(path), path
}

func TestStore_SetAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	pair := dto.TokenPair{Access: "access-value", Refresh: "refresh-value"}
	require.NoError(t, store.Set(ctx, pair))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, pair, got)
}

func TestStore_DiskFormat(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, dto.TokenPair{Access: "a-token", Refresh: "r-token"}))

	encoded, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]string
	require.NoError(t, json.Unmarshal(encoded, &raw))
	assert.Equal(t, "a-token", raw["accessToken"])
	assert.Equal(t, "r-token", raw["refreshToken"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_SetIncompletePair(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, dto.TokenPair{Access: "old-a", Refresh: "old-r"}))

	tests := []struct {
		name string
		pair dto.TokenPair
	}{
		{name: "missing refresh", pair: dto.TokenPair{Access: "only-access"}},
		{name: "missing access", pair: dto.TokenPair{Refresh: "only-refresh"}},
		{name: "empty pair", pair: dto.TokenPair{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Set(ctx, tt.pair)
			assert.ErrorIs(t, err, storage.ErrIncompletePair)
		})
	}

	// Отклоненная запись не трогает прежнюю пару.
	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.TokenPair{Access: "old-a", Refresh: "old-r"}, got)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_GetMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background())
	assert.ErrorIs(t, err, storage.ErrNoTokens)
}

func TestStore_GetPartialFile(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"accessToken":"orphan"}`), 0o600))

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, storage.ErrNoTokens)
}

func TestStore_Clear(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, dto.TokenPair{Access: "a", Refresh: "r"}))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, storage.ErrNoTokens)

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Повторная очистка отсутствующего файла не является ошибкой.
	assert.NoError(t, store.Clear(ctx))
}

func TestStore_Overwrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, dto.TokenPair{Access: "first-a", Refresh: "first-r"}))
	require.NoError(t, store.Set(ctx, dto.TokenPair{Access: "second-a", Refresh: "second-r"}))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.TokenPair{Access: "second-a", Refresh: "second-r"}, got)
}
