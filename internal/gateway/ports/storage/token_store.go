// Package storage определяет интерфейсы хранилища токенов.
package storage

import (
	"context"
	"errors"

	"finledger/internal/gateway/app/dto"
)

// Ошибки хранилища токенов.
var (
	// ErrNoTokens возвращается, когда сохраненной пары токенов нет.
	ErrNoTokens = errors.New("no stored token pair")
	// ErrIncompletePair возвращается при попытке сохранить неполную пару.
	ErrIncompletePair = errors.New("token pair must contain both access and refresh tokens")
)

// TokenStore определяет интерфейс для долговременного хранения пары токенов.
// Пара хранится атомарно: Get никогда не возвращает наполовину заполненную пару.
type TokenStore interface {
	// Set сохраняет оба токена. Неполная пара отклоняется с ErrIncompletePair.
	Set(ctx context.Context, pair dto.TokenPair) error

	// Get возвращает сохраненную пару или ErrNoTokens, если хотя бы один
	// из токенов отсутствует.
	Get(ctx context.Context) (dto.TokenPair, error)

	// Clear безусловно удаляет оба токена.
	Clear(ctx context.Context) error
}
