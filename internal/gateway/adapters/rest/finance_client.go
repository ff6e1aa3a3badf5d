package rest

import (
	"context"
	"fmt"
	"net/http"

	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/ports/api"
)

// Эндпоинты finance-ресурсов.
const (
	pathWallets      = "finance/wallets/"
	pathTransactions = "finance/transactions/"
	pathCategories   = "finance/categories/"
	pathTags         = "finance/tags/"
	pathTransfers    = "finance/transfers/"
)

// FinanceClientImpl реализует интерфейс api.FinanceClient поверх REST эндпоинтов.
// Все методы выполняются авторизованным клиентом.
type FinanceClientImpl struct {
	client *Client
}

// NewFinanceClient создает новый клиент finance-ресурсов.
func NewFinanceClient(client *Client) api.FinanceClient {
	return &FinanceClientImpl{client: client}
}

// listResource получает страницу коллекции ресурсов.
func listResource[T any](ctx context.Context, c *Client, path string, params *dto.ListParams) (*dto.PaginatedResponse[T], error) {
	var page dto.PaginatedResponse[T]
	if err := c.doJSON(ctx, c.authorized, http.MethodGet, path, listQuery(params), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	return &page, nil
}

// getResource получает один ресурс по идентификатору.
func getResource[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var resource T
	if err := c.doJSON(ctx, c.authorized, http.MethodGet, path, nil, nil, &resource); err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	return &resource, nil
}

// createResource создает ресурс в коллекции.
func createResource[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var resource T
	if err := c.doJSON(ctx, c.authorized, http.MethodPost, path, nil, body, &resource); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return &resource, nil
}

// updateResource обновляет ресурс по идентификатору.
func updateResource[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var resource T
	if err := c.doJSON(ctx, c.authorized, http.MethodPut, path, nil, body, &resource); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", path, err)
	}
	return &resource, nil
}

// deleteResource удаляет ресурс по идентификатору.
func deleteResource(ctx context.Context, c *Client, path string) error {
	if err := c.doJSON(ctx, c.authorized, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// ListWallets возвращает страницу кошельков.
func (f *FinanceClientImpl) ListWallets(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Wallet], error) {
	return listResource[dto.Wallet](ctx, f.client, pathWallets, params)
}

// GetWallet возвращает кошелек по идентификатору.
func (f *FinanceClientImpl) GetWallet(ctx context.Context, id int64) (*dto.Wallet, error) {
	return getResource[dto.Wallet](ctx, f.client, fmt.Sprintf("%s%d/", pathWallets, id))
}

// CreateWallet создает новый кошелек.
func (f *FinanceClientImpl) CreateWallet(ctx context.Context, req *dto.CreateWalletRequest) (*dto.Wallet, error) {
	return createResource[dto.Wallet](ctx, f.client, pathWallets, req)
}

// UpdateWallet обновляет кошелек.
func (f *FinanceClientImpl) UpdateWallet(ctx context.Context, id int64, req *dto.CreateWalletRequest) (*dto.Wallet, error) {
	return updateResource[dto.Wallet](ctx, f.client, fmt.Sprintf("%s%d/", pathWallets, id), req)
}

// DeleteWallet удаляет кошелек.
func (f *FinanceClientImpl) DeleteWallet(ctx context.Context, id int64) error {
	return deleteResource(ctx, f.client, fmt.Sprintf("%s%d/", pathWallets, id))
}

// RecalculateWallet пересчитывает текущий баланс кошелька на сервере.
func (f *FinanceClientImpl) RecalculateWallet(ctx context.Context, id int64) (*dto.Wallet, error) {
	return createResource[dto.Wallet](ctx, f.client, fmt.Sprintf("%s%d/recalculate/", pathWallets, id), nil)
}

// ListTransactions возвращает страницу операций.
func (f *FinanceClientImpl) ListTransactions(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Transaction], error) {
	return listResource[dto.Transaction](ctx, f.client, pathTransactions, params)
}

// GetTransaction возвращает операцию по идентификатору.
func (f *FinanceClientImpl) GetTransaction(ctx context.Context, id int64) (*dto.Transaction, error) {
	return getResource[dto.Transaction](ctx, f.client, fmt.Sprintf("%s%d/", pathTransactions, id))
}

// CreateTransaction создает новую операцию.
func (f *FinanceClientImpl) CreateTransaction(ctx context.Context, req *dto.CreateTransactionRequest) (*dto.Transaction, error) {
	return createResource[dto.Transaction](ctx, f.client, pathTransactions, req)
}

// UpdateTransaction обновляет операцию.
func (f *FinanceClientImpl) UpdateTransaction(ctx context.Context, id int64, req *dto.CreateTransactionRequest) (*dto.Transaction, error) {
	return updateResource[dto.Transaction](ctx, f.client, fmt.Sprintf("%s%d/", pathTransactions, id), req)
}

// DeleteTransaction удаляет операцию.
func (f *FinanceClientImpl) DeleteTransaction(ctx context.Context, id int64) error {
	return deleteResource(ctx, f.client, fmt.Sprintf("%s%d/", pathTransactions, id))
}

// ListCategories возвращает страницу категорий.
func (f *FinanceClientImpl) ListCategories(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Category], error) {
	return listResource[dto.Category](ctx, f.client, pathCategories, params)
}

// CreateCategory создает новую категорию.
func (f *FinanceClientImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.Category, error) {
	return createResource[dto.Category](ctx, f.client, pathCategories, req)
}

// UpdateCategory обновляет категорию.
func (f *FinanceClientImpl) UpdateCategory(ctx context.Context, id int64, req *dto.CreateCategoryRequest) (*dto.Category, error) {
	return updateResource[dto.Category](ctx, f.client, fmt.Sprintf("%s%d/", pathCategories, id), req)
}

// DeleteCategory удаляет категорию.
func (f *FinanceClientImpl) DeleteCategory(ctx context.Context, id int64) error {
	return deleteResource(ctx, f.client, fmt.Sprintf("%s%d/", pathCategories, id))
}

// ListTags возвращает страницу меток.
func (f *FinanceClientImpl) ListTags(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Tag], error) {
	return listResource[dto.Tag](ctx, f.client, pathTags, params)
}

// CreateTag создает новую метку.
func (f *FinanceClientImpl) CreateTag(ctx context.Context, req *dto.CreateTagRequest) (*dto.Tag, error) {
	return createResource[dto.Tag](ctx, f.client, pathTags, req)
}

// DeleteTag удаляет метку.
func (f *FinanceClientImpl) DeleteTag(ctx context.Context, id int64) error {
	return deleteResource(ctx, f.client, fmt.Sprintf("%s%d/", pathTags, id))
}

// ListTransfers возвращает страницу переводов.
func (f *FinanceClientImpl) ListTransfers(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Transfer], error) {
	return listResource[dto.Transfer](ctx, f.client, pathTransfers, params)
}

// CreateTransfer создает новый перевод между кошельками.
func (f *FinanceClientImpl) CreateTransfer(ctx context.Context, req *dto.CreateTransferRequest) (*dto.Transfer, error) {
	return createResource[dto.Transfer](ctx, f.client, pathTransfers, req)
}

// DeleteTransfer удаляет перевод.
func (f *FinanceClientImpl) DeleteTransfer(ctx context.Context, id int64) error {
	return deleteResource(ctx, f.client, fmt.Sprintf("%s%d/", pathTransfers, id))
}
