package api

import (
	"context"

	"finledger/internal/gateway/app/dto"
)

// FinanceClient определяет интерфейс для finance-ресурсов удаленного API.
// Все методы требуют авторизованный клиент.
type FinanceClient interface {
	ListWallets(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Wallet], error)
	GetWallet(ctx context.Context, id int64) (*dto.Wallet, error)
	CreateWallet(ctx context.Context, req *dto.CreateWalletRequest) (*dto.Wallet, error)
	UpdateWallet(ctx context.Context, id int64, req *dto.CreateWalletRequest) (*dto.Wallet, error)
	DeleteWallet(ctx context.Context, id int64) error
	RecalculateWallet(ctx context.Context, id int64) (*dto.Wallet, error)

	ListTransactions(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Transaction], error)
	GetTransaction(ctx context.Context, id int64) (*dto.Transaction, error)
	CreateTransaction(ctx context.Context, req *dto.CreateTransactionRequest) (*dto.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, req *dto.CreateTransactionRequest) (*dto.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	ListCategories(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Category], error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *dto.CreateCategoryRequest) (*dto.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListTags(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Tag], error)
	CreateTag(ctx context.Context, req *dto.CreateTagRequest) (*dto.Tag, error)
	DeleteTag(ctx context.Context, id int64) error

	ListTransfers(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Transfer], error)
	CreateTransfer(ctx context.Context, req *dto.CreateTransferRequest) (*dto.Transfer, error)
	DeleteTransfer(ctx context.Context, id int64) error
}

// InvestClient определяет интерфейс для invest-ресурсов удаленного API.
type InvestClient interface {
	ListPortfolios(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Portfolio], error)
	GetPortfolio(ctx context.Context, id string) (*dto.Portfolio, error)
	CreatePortfolio(ctx context.Context, req *dto.CreatePortfolioRequest) (*dto.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id string, req *dto.CreatePortfolioRequest) (*dto.Portfolio, error)
	DeletePortfolio(ctx context.Context, id string) error

	ListAssets(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.Asset], error)
	GetAsset(ctx context.Context, id string) (*dto.Asset, error)

	ListHoldings(ctx context.Context, portfolioID string) (*dto.PaginatedResponse[dto.Holding], error)

	ListInvestTransactions(ctx context.Context, params *dto.ListParams) (*dto.PaginatedResponse[dto.InvestTransaction], error)
	CreateInvestTransaction(ctx context.Context, req *dto.CreateInvestTransactionRequest) (*dto.InvestTransaction, error)
	DeleteInvestTransaction(ctx context.Context, id string) error
}
