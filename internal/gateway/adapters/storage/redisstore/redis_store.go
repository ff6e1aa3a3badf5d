// Package redisstore содержит реализацию хранилища токенов на Redis.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/config"
	"finledger/internal/gateway/ports/storage"
	"finledger/pkg/logger"
)

// Ключи хранения пары токенов.
const (
	KeyAccessToken  = "accessToken"  // #nosec G101 - key name, not a credential
	KeyRefreshToken = "refreshToken" // #nosec G101 - key name, not a credential
)

// Константы для логирования.
const (
	ErrorFailedToSet   = "failed to set token pair in redis"
	ErrorFailedToGet   = "failed to get token pair from redis"
	ErrorFailedToClear = "failed to clear token pair in redis"
	ErrorFailedToClose = "failed to close redis connection"
)

// Store реализует storage.TokenStore поверх Redis.
// Оба ключа записываются одним TxPipeline и читаются одним MGET,
// поэтому пара остается атомарной.
type Store struct {
	client *redis.Client
}

// NewStore создает хранилище токенов на Redis и проверяет соединение.
func NewStore(ctx context.Context, cfg *config.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddressString(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Set сохраняет оба токена одной транзакцией.
func (s *Store) Set(ctx context.Context, pair dto.TokenPair) error {
	if !pair.IsComplete() {
		return storage.ErrIncompletePair
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KeyAccessToken, pair.Access, 0)
	pipe.Set(ctx, KeyRefreshToken, pair.Refresh, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Get возвращает сохраненную пару или ErrNoTokens, если любой из ключей пуст.
func (s *Store) Get(ctx context.Context) (dto.TokenPair, error) {
	values, err := s.client.MGet(ctx, KeyAccessToken, KeyRefreshToken).Result()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToGet, zap.Error(err))
		return dto.TokenPair{}, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	pair := dto.TokenPair{
		Access:  asString(values[0]),
		Refresh: asString(values[1]),
	}
	if !pair.IsComplete() {
		return dto.TokenPair{}, storage.ErrNoTokens
	}

	return pair, nil
}

// Clear безусловно удаляет оба ключа.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyAccessToken, KeyRefreshToken).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToClear, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToClear, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *Store) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

// asString приводит значение MGET к строке; nil означает отсутствие ключа.
func asString(value any) string {
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}
