package rest

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/gateway/adapters/storage/memory"
	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/ports/storage"
)

func seedStore(t *testing.T, pair dto.TokenPair) *memory.Store {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.Set(context.Background(), pair))
	return store
}

// makeExpiredToken собирает неподписанный JWT с истекшим exp-клеймом.
func makeExpiredToken(t *testing.T) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(`{"exp":1000000}`))
	return header + "." + claims + "."
}

func TestAuthTransport_AttachesBearer(t *testing.T) {
	store := seedStore(t, dto.TokenPair{Access: "valid-access", Refresh: "valid-refresh"})

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := newAuthTransport(nil, store, func(_ context.Context, _ string) (string, error) {
		t.Fatal("refresh should not be called")
		return "", nil
	})
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer valid-access", gotAuth)
}

func TestAuthTransport_NoTokensPassThrough(t *testing.T) {
	store := memory.NewStore()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var refreshCalls atomic.Int32
	transport := newAuthTransport(nil, store, func(_ context.Context, _ string) (string, error) {
		refreshCalls.Add(1)
		return "fresh", nil
	})
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// Без пары токенов 401 не запускает обновление.
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, gotAuth)
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestAuthTransport_RefreshOn401AndRetry(t *testing.T) {
	store := seedStore(t, dto.TokenPair{Access: "stale-access", Refresh: "valid-refresh"})

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var refreshCalls atomic.Int32
	transport := newAuthTransport(nil, store, func(_ context.Context, refreshToken string) (string, error) {
		refreshCalls.Add(1)
		assert.Equal(t, "valid-refresh", refreshToken)
		return "fresh-access", nil
	})
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), requests.Load())
	assert.Equal(t, int32(1), refreshCalls.Load())

	// Пара обновлена: новый access, прежний refresh.
	pair, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.TokenPair{Access: "fresh-access", Refresh: "valid-refresh"}, pair)
}

func TestAuthTransport_RetryReplaysBody(t *testing.T) {
	store := seedStore(t, dto.TokenPair{Access: "stale-access", Refresh: "valid-refresh"})

	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		if r.Header.Get("Authorization") != "Bearer fresh-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := newAuthTransport(nil, store, func(_ context.Context, _ string) (string, error) {
		return "fresh-access", nil
	})
	client := &http.Client{Transport: transport}

	resp, err := client.Post(server.URL, "application/json", strings.NewReader(`{"amount":"10.00"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
}

func TestAuthTransport_RefreshRejectedClearsStore(t *testing.T) {
	store := seedStore(t, dto.TokenPair{Access: "stale-access", Refresh: "revoked-refresh"})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	transport := newAuthTransport(nil, store, func(_ context.Context, _ string) (string, error) {
		return "", errors.New("token is blacklisted")
	})
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL) //nolint:bodyclose // запрос завершается ошибкой
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = store.Get(context.Background())
	assert.ErrorIs(t, err, storage.ErrNoTokens)
}

func TestAuthTransport_AtMostOneRetry(t *testing.T) {
	store := seedStore(t, dto.TokenPair{Access: "stale-access", Refresh: "valid-refresh"})

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var refreshCalls atomic.Int32
	transport := newAuthTransport(nil, store, func(_ context.Context, _ string) (string, error) {
		refreshCalls.Add(1)
		return "fresh-access", nil
	})
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// Сервер отвергает и обновленный токен: ровно один повтор, без циклов.
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(2), requests.Load())
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestAuthTransport_ProactiveRefreshOnExpiredToken(t *testing.T) {
	store := seedStore(t, dto.TokenPair{Access: makeExpiredToken(t), Refresh: "valid-refresh"})

	var requests atomic.Int32
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var refreshCalls atomic.Int32
	transport := newAuthTransport(nil, store, func(_ context.Context, _ string) (string, error) {
		refreshCalls.Add(1)
		return "fresh-access", nil
	})
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// Просроченный токен обновляется до запроса: сервер видит только новый.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, "Bearer fresh-access", gotAuth)
}

func TestAuthTransport_ConcurrentRefreshCollapsed(t *testing.T) {
	store := seedStore(t, dto.TokenPair{Access: "stale-access", Refresh: "valid-refresh"})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var refreshCalls atomic.Int32
	transport := newAuthTransport(nil, store, func(_ context.Context, _ string) (string, error) {
		refreshCalls.Add(1)
		time.Sleep(100 * time.Millisecond)
		return "fresh-access", nil
	})
	client := &http.Client{Transport: transport}

	const workers = 4
	statuses := make(chan int, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			resp, err := client.Get(server.URL)
			if err != nil {
				errs <- err
				return
			}
			defer func() { _ = resp.Body.Close() }()
			statuses <- resp.StatusCode
		}()
	}

	for i := 0; i < workers; i++ {
		select {
		case err := <-errs:
			t.Fatalf("request failed: %v", err)
		case status := <-statuses:
			assert.Equal(t, http.StatusOK, status)
		}
	}

	// Конкурентные 401 схлопываются в одно обновление.
	assert.Equal(t, int32(1), refreshCalls.Load())
}
