// Package resilience содержит механизмы обеспечения отказоустойчивости
// при обращении к удаленному API.
package resilience

import (
	"context"
	"sync"

	"finledger/pkg/logger"
)

// Константы для логирования.
const (
	LogFlightStarted = "refresh flight started"
	LogFlightJoined  = "joined in-flight refresh"
)

// flight представляет одно выполняющееся обновление токена.
type flight struct {
	done  chan struct{}
	value string
	err   error
}

// SingleFlight схлопывает конкурентные обновления токена в одно выполняющееся.
// Первый вызвавший выполняет fn, остальные ожидают его результат вместо
// того, чтобы выпускать собственный запрос. Это устраняет гонку, при которой
// более старый access-токен мог перезаписать только что полученный.
type SingleFlight struct {
	mu       sync.Mutex
	inflight *flight
}

// NewSingleFlight создает новый экземпляр SingleFlight.
func NewSingleFlight() *SingleFlight {
	return &SingleFlight{}
}

// Do выполняет fn, если обновление еще не выполняется, иначе ожидает
// результат выполняющегося. Отмена контекста ожидающего не прерывает
// само обновление.
func (s *SingleFlight) Do(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	s.mu.Lock()
	if current := s.inflight; current != nil {
		s.mu.Unlock()
		logger.Log(ctx).Debug(ctx, LogFlightJoined)

		select {
		case <-current.done:
			return current.value, current.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	current := &flight{done: make(chan struct{})}
	s.inflight = current
	s.mu.Unlock()

	logger.Log(ctx).Debug(ctx, LogFlightStarted)

	current.value, current.err = fn(ctx)

	s.mu.Lock()
	s.inflight = nil
	s.mu.Unlock()

	close(current.done)

	return current.value, current.err
}
