// Package file содержит файловую реализацию хранилища токенов.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/ports/storage"
)

// Константы для сообщений об ошибках.
const (
	ErrorFailedToPersist = "failed to persist token pair"
	ErrorFailedToRead    = "failed to read token pair"
	ErrorFailedToClear   = "failed to clear token pair"
)

// storedTokens - дисковый формат пары токенов.
type storedTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Store реализует storage.TokenStore поверх JSON файла.
// Запись выполняется во временный файл с последующим rename, поэтому
// на диске никогда не появляется наполовину записанная пара.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore создает файловое хранилище токенов по указанному пути.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Set сохраняет оба токена атомарно.
func (s *Store) Set(_ context.Context, pair dto.TokenPair) error {
	if !pair.IsComplete() {
		return storage.ErrIncompletePair
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := json.Marshal(storedTokens{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToPersist, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToPersist, err)
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToPersist, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", ErrorFailedToPersist, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", ErrorFailedToPersist, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", ErrorFailedToPersist, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", ErrorFailedToPersist, err)
	}

	return nil
}

// Get возвращает сохраненную пару. Отсутствующий файл или неполная пара
// трактуются как отсутствие сессии.
func (s *Store) Get(_ context.Context) (dto.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dto.TokenPair{}, storage.ErrNoTokens
		}
		return dto.TokenPair{}, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}

	var stored storedTokens
	if err := json.Unmarshal(encoded, &stored); err != nil {
		return dto.TokenPair{}, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}

	pair := dto.TokenPair{Access: stored.AccessToken, Refresh: stored.RefreshToken}
	if !pair.IsComplete() {
		return dto.TokenPair{}, storage.ErrNoTokens
	}

	return pair, nil
}

// Clear безусловно удаляет сохраненную пару.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", ErrorFailedToClear, err)
	}
	return nil
}
