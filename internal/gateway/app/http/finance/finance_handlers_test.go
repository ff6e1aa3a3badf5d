package finance_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/gateway/adapters/rest"
	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/app/http/finance"
	"finledger/internal/gateway/app/http/middleware"
	"finledger/internal/gateway/ports/api"
)

// fakeFinanceClient реализует только используемые в тестах методы;
// остальные наследуются от встроенного нулевого интерфейса.
type fakeFinanceClient struct {
	api.FinanceClient

	wallets    []dto.Wallet
	listErr    error
	listParams *dto.ListParams
	deletedID  int64
}

func (f *fakeFinanceClient) ListWallets(_ context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Wallet], error) {
	f.listParams = params
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &dto.PaginatedResponse[dto.Wallet]{
		Count:   len(f.wallets),
		Results: f.wallets,
	}, nil
}

func (f *fakeFinanceClient) DeleteWallet(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

func newFinanceApp(client api.FinanceClient) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewRequestIDMiddleware())

	handler := finance.NewHandler(client)
	app.Get("/api/finance/wallets", handler.ListWallets)
	app.Delete("/api/finance/wallets/:id", handler.DeleteWallet)

	return app
}

func TestListWallets_ForwardsQueryParams(t *testing.T) {
	client := &fakeFinanceClient{
		wallets: []dto.Wallet{{ID: 1, Name: "Cash"}, {ID: 2, Name: "Card"}},
	}
	app := newFinanceApp(client)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/finance/wallets?page=2&page_size=25&search=cash&ordering=-name", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, client.listParams)
	assert.Equal(t, 2, client.listParams.Page)
	assert.Equal(t, 25, client.listParams.PageSize)
	assert.Equal(t, "cash", client.listParams.Search)
	assert.Equal(t, "-name", client.listParams.Ordering)

	var page dto.PaginatedResponse[dto.Wallet]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "Cash", page.Results[0].Name)
}

func TestListWallets_TranslatesAPIError(t *testing.T) {
	client := &fakeFinanceClient{
		listErr: &rest.APIError{StatusCode: http.StatusForbidden, Detail: "not your wallet"},
	}
	app := newFinanceApp(client)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/finance/wallets", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not your wallet", body["error"])
}

func TestListWallets_SessionExpiredBecomes401(t *testing.T) {
	client := &fakeFinanceClient{listErr: rest.ErrSessionExpired}
	app := newFinanceApp(client)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/finance/wallets", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListWallets_UpstreamDownBecomes502(t *testing.T) {
	client := &fakeFinanceClient{listErr: errors.New("connection refused")}
	app := newFinanceApp(client)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/finance/wallets", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestDeleteWallet(t *testing.T) {
	client := &fakeFinanceClient{}
	app := newFinanceApp(client)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/finance/wallets/42", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int64(42), client.deletedID)
}

func TestDeleteWallet_RejectsBadID(t *testing.T) {
	client := &fakeFinanceClient{}
	app := newFinanceApp(client)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/finance/wallets/abc", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, int64(0), client.deletedID)
}
