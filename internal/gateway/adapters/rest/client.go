package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/config"
	"finledger/internal/gateway/ports/storage"
)

// Константы для сообщений об ошибках.
const (
	ErrorBuildRequest   = "failed to build request"
	ErrorExecuteRequest = "failed to execute request"
	ErrorReadResponse   = "failed to read response body"
	ErrorDecodeResponse = "failed to decode response body"
)

// maxErrorBodySize ограничивает размер читаемого тела ошибки.
const maxErrorBodySize = 64 << 10

// Client содержит два логических HTTP клиента удаленного API с общим базовым
// адресом и политикой таймаутов: публичный (login, register, password reset)
// и авторизованный (bearer-токен с прозрачным обновлением по 401).
type Client struct {
	endpointBase string
	public       *http.Client
	authorized   *http.Client
	store        storage.TokenStore
}

// NewClient создает клиент удаленного API поверх указанного хранилища токенов.
func NewClient(cfg *config.APIConfig, store storage.TokenStore) *Client {
	c := &Client{
		endpointBase: cfg.GetEndpointBase(),
		store:        store,
	}

	c.public = &http.Client{Timeout: cfg.Timeout}
	c.authorized = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: newAuthTransport(nil, store, c.refreshAccessToken),
	}

	return c
}

// refreshAccessToken обменивает refresh-токен на новый access-токен
// через публичный клиент.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	var resp dto.RefreshResponse
	req := dto.RefreshRequest{Refresh: refreshToken}
	if err := c.doJSON(ctx, c.public, http.MethodPost, "auth/token/refresh/", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

// doJSON выполняет JSON запрос указанным клиентом. Ответы вне диапазона 2xx
// превращаются в *APIError с деталями из тела.
func (c *Client) doJSON(ctx context.Context, httpClient *http.Client, method, path string, query url.Values, body, out any) error {
	endpoint := c.endpointBase + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrorBuildRequest, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorBuildRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorExecuteRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if readErr != nil {
			return fmt.Errorf("%s: %w", ErrorReadResponse, readErr)
		}
		return parseAPIError(resp.StatusCode, errBody)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", ErrorDecodeResponse, err)
	}

	return nil
}

// listQuery собирает query-параметры списочного запроса.
func listQuery(params *dto.ListParams) url.Values {
	if params == nil {
		return nil
	}

	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(params.PageSize))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Ordering != "" {
		query.Set("ordering", params.Ordering)
	}

	return query
}
