package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/ports/storage"
	"finledger/internal/gateway/resilience"
	"finledger/pkg/logger"
)

// Константы для логирования.
const (
	LogTokenRefresh      = "refreshing access token" // #nosec G101 - not a credential
	LogTokenRefreshed    = "access token refreshed"
	LogRetryAfterRefresh = "retrying request with refreshed token"
	LogProactiveRefresh  = "access token past expiry, refreshing before request"

	ErrorRefreshRejected = "refresh token rejected"
	ErrorRetryFailed     = "failed to retry request"
)

// maxAuthRetries - бюджет повторов исходного запроса после обновления токена.
// Ровно один повтор на запрос; предотвращает бесконечные циклы обновления.
const maxAuthRetries = 1

// refreshFunc выполняет обмен refresh-токена на новый access-токен.
type refreshFunc func(ctx context.Context, refreshToken string) (string, error)

// authTransport - авторизующий http.RoundTripper. Перед каждым запросом
// читает пару токенов из хранилища и подставляет bearer-учетные данные.
// Ответ 401 восстанавливается прозрачно: одно обновление токена и один
// повтор исходного запроса; невосстановимый отказ очищает хранилище и
// завершается ErrSessionExpired.
type authTransport struct {
	base    http.RoundTripper
	store   storage.TokenStore
	refresh refreshFunc
	flight  *resilience.SingleFlight
}

// newAuthTransport создает авторизующий транспорт поверх base.
func newAuthTransport(base http.RoundTripper, store storage.TokenStore, refresh refreshFunc) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{
		base:    base,
		store:   store,
		refresh: refresh,
		flight:  resilience.NewSingleFlight(),
	}
}

// RoundTrip выполняет запрос с bearer-учетными данными и восстановлением по 401.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	log := logger.Log(ctx).With(zap.String("url", req.URL.Path))

	pair, err := t.store.Get(ctx)
	hasPair := err == nil && pair.IsComplete()

	attempt := req.Clone(ctx)
	if hasPair {
		access := pair.Access
		if accessTokenExpired(access) {
			// Токен заведомо просрочен - первый запрос обречен,
			// обновляем сразу. Путь через 401 остается авторитетным.
			log.Debug(ctx, LogProactiveRefresh)
			refreshed, rerr := t.refreshAndStore(ctx)
			if rerr != nil {
				return nil, rerr
			}
			access = refreshed
		}
		attempt.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := t.base.RoundTrip(attempt)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if !hasPair {
		return resp, nil
	}

	for retries := 0; resp.StatusCode == http.StatusUnauthorized && retries < maxAuthRetries; retries++ {
		drainBody(resp)

		access, rerr := t.refreshAndStore(ctx)
		if rerr != nil {
			return nil, rerr
		}

		log.Debug(ctx, LogRetryAfterRefresh)

		retry, cerr := cloneForRetry(ctx, req)
		if cerr != nil {
			return nil, cerr
		}
		retry.Header.Set("Authorization", "Bearer "+access)

		resp, err = t.base.RoundTrip(retry)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorRetryFailed, err)
		}
	}

	return resp, nil
}

// refreshAndStore обновляет access-токен через single-flight и сохраняет его
// рядом с прежним refresh-токеном. Отклоненное обновление очищает хранилище.
func (t *authTransport) refreshAndStore(ctx context.Context) (string, error) {
	return t.flight.Do(ctx, func(ctx context.Context) (string, error) {
		log := logger.Log(ctx)
		log.Debug(ctx, LogTokenRefresh)

		pair, err := t.store.Get(ctx)
		if err != nil {
			return "", fmt.Errorf("%s: %w", ErrorRefreshRejected, ErrSessionExpired)
		}

		access, err := t.refresh(ctx, pair.Refresh)
		if err != nil {
			log.Warn(ctx, ErrorRefreshRejected, zap.Error(err))
			_ = t.store.Clear(ctx)
			return "", fmt.Errorf("%s: %w", ErrorRefreshRejected, ErrSessionExpired)
		}

		if err := t.store.Set(ctx, dto.TokenPair{Access: access, Refresh: pair.Refresh}); err != nil {
			return "", fmt.Errorf("failed to store refreshed token: %w", err)
		}

		log.Debug(ctx, LogTokenRefreshed)
		return access, nil
	})
}

// accessTokenExpired сообщает, истек ли срок действия access-токена по его
// exp-клейму. Подпись не проверяется - ключа у клиента нет, решение
// принимает сервер; любая ошибка разбора трактуется как "не истек".
func accessTokenExpired(access string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}

// cloneForRetry клонирует запрос для повтора, восстанавливая тело из GetBody.
func cloneForRetry(ctx context.Context, req *http.Request) (*http.Request, error) {
	retry := req.Clone(ctx)
	if req.Body == nil || req.GetBody == nil {
		return retry, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorRetryFailed, err)
	}
	retry.Body = body

	return retry, nil
}

// drainBody дочитывает и закрывает тело ответа, позволяя переиспользовать соединение.
func drainBody(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
