// Package memory содержит хранилище токенов в памяти процесса.
// Используется в тестах и при явном отказе от долговременного хранения.
package memory

import (
	"context"
	"sync"

	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/ports/storage"
)

// Store реализует storage.TokenStore в памяти.
type Store struct {
	mu   sync.RWMutex
	pair dto.TokenPair
	set  bool
}

// NewStore создает новое хранилище токенов в памяти.
func NewStore() *Store {
	return &Store{}
}

// Set сохраняет оба токена.
func (s *Store) Set(_ context.Context, pair dto.TokenPair) error {
	if !pair.IsComplete() {
		return storage.ErrIncompletePair
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.set = true
	return nil
}

// Get возвращает сохраненную пару или ErrNoTokens.
func (s *Store) Get(_ context.Context) (dto.TokenPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set || !s.pair.IsComplete() {
		return dto.TokenPair{}, storage.ErrNoTokens
	}
	return s.pair, nil
}

// Clear безусловно удаляет оба токена.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = dto.TokenPair{}
	s.set = false
	return nil
}
