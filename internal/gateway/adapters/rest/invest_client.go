package rest

import (
	"context"

	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/ports/api"
)

// Эндпоинты invest-ресурсов.
const (
	pathPortfolios = "invest/portfolios/"
	pathAssets     = "invest/assets/"
	pathInvestTxns = "invest/transactions/"
)

// InvestClientImpl реализует интерфейс api.InvestClient поверх REST эндпоинтов.
type InvestClientImpl struct {
	client *Client
}

// NewInvestClient создает новый клиент invest-ресурсов.
func NewInvestClient(client *Client) api.InvestClient {
	return &InvestClientImpl{client: client}
}

// ListPortfolios возвращает страницу портфелей.
func (i *InvestClientImpl) ListPortfolios(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Portfolio], error) {
	return listResource[dto.Portfolio](ctx, i.client, pathPortfolios, params)
}

// GetPortfolio возвращает портфель по идентификатору.
func (i *InvestClientImpl) GetPortfolio(ctx context.Context, id string) (*dto.Portfolio, error) {
	return getResource[dto.Portfolio](ctx, i.client, pathPortfolios+id+"/")
}

// CreatePortfolio создает новый портфель.
func (i *InvestClientImpl) CreatePortfolio(ctx context.Context, req *dto.CreatePortfolioRequest) (*dto.Portfolio, error) {
	return createResource[dto.Portfolio](ctx, i.client, pathPortfolios, req)
}

// UpdatePortfolio обновляет портфель.
func (i *InvestClientImpl) UpdatePortfolio(ctx context.Context, id string, req *dto.CreatePortfolioRequest) (*dto.Portfolio, error) {
	return updateResource[dto.Portfolio](ctx, i.client, pathPortfolios+id+"/", req)
}

// DeletePortfolio удаляет портфель.
func (i *InvestClientImpl) DeletePortfolio(ctx context.Context, id string) error {
	return deleteResource(ctx, i.client, pathPortfolios+id+"/")
}

// ListAssets возвращает страницу активов.
func (i *InvestClientImpl) ListAssets(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Asset], error) {
	return listResource[dto.Asset](ctx, i.client, pathAssets, params)
}

// GetAsset возвращает актив по идентификатору.
func (i *InvestClientImpl) GetAsset(ctx context.Context, id string) (*dto.Asset, error) {
	return getResource[dto.Asset](ctx, i.client, pathAssets+id+"/")
}

// ListHoldings возвращает позиции указанного портфеля.
func (i *InvestClientImpl) ListHoldings(ctx context.Context, portfolioID string) (*dto.PaginatedResponse[dto.Holding], error) {
	return listResource[dto.Holding](ctx, i.client, pathPortfolios+portfolioID+"/holdings/", nil)
}

// ListInvestTransactions возвращает страницу сделок.
func (i *InvestClientImpl) ListInvestTransactions(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.InvestTransaction], error) {
	return listResource[dto.InvestTransaction](ctx, i.client, pathInvestTxns, params)
}

// CreateInvestTransaction создает новую сделку.
func (i *InvestClientImpl) CreateInvestTransaction(ctx context.Context, req *dto.CreateInvestTransactionRequest) (*dto.InvestTransaction, error) {
	return createResource[dto.InvestTransaction](ctx, i.client, pathInvestTxns, req)
}

// DeleteInvestTransaction удаляет сделку.
func (i *InvestClientImpl) DeleteInvestTransaction(ctx context.Context, id string) error {
	return deleteResource(ctx, i.client, pathInvestTxns+id+"/")
}
