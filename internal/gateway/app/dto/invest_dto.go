package dto

// Asset содержит торгуемый актив.
type Asset struct {
	ID             string `json:"id"`
	Symbol         string `json:"symbol"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Exchange       string `json:"exchange,omitempty"`
	Sector         string `json:"sector,omitempty"`
	Currency       string `json:"currency"`
	IsActive       bool   `json:"is_active"`
	LatestPrice    string `json:"latest_price,omitempty"`
	PriceChange24h string `json:"price_change_24h,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// Portfolio содержит инвестиционный портфель.
type Portfolio struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	InitialCapital     string `json:"initial_capital"`
	RiskLevel          string `json:"risk_level"`
	IsActive           bool   `json:"is_active"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
	TotalValue         string `json:"total_value,omitempty"`
	TotalPnl           string `json:"total_pnl,omitempty"`
	TotalPnlPercentage string `json:"total_pnl_percentage,omitempty"`
}

// CreatePortfolioRequest содержит данные для создания портфеля.
type CreatePortfolioRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	InitialCapital string `json:"initial_capital"`
	RiskLevel      string `json:"risk_level"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

// Holding содержит позицию портфеля по активу.
type Holding struct {
	ID                      string `json:"id"`
	Portfolio               string `json:"portfolio"`
	PortfolioName           string `json:"portfolio_name"`
	Asset                   string `json:"asset"`
	AssetSymbol             string `json:"asset_symbol"`
	AssetName               string `json:"asset_name"`
	Quantity                string `json:"quantity"`
	AveragePrice            string `json:"average_price"`
	CurrentPrice            string `json:"current_price,omitempty"`
	CurrentValue            string `json:"current_value,omitempty"`
	UnrealizedPnl           string `json:"unrealized_pnl,omitempty"`
	UnrealizedPnlPercentage string `json:"unrealized_pnl_percentage,omitempty"`
	LastUpdated             string `json:"last_updated"`
}

// InvestTransaction содержит сделку по портфелю.
type InvestTransaction struct {
	ID              string `json:"id"`
	Portfolio       string `json:"portfolio"`
	PortfolioName   string `json:"portfolio_name"`
	Asset           string `json:"asset"`
	AssetSymbol     string `json:"asset_symbol"`
	AssetName       string `json:"asset_name"`
	Type            string `json:"type"`
	Quantity        string `json:"quantity"`
	Price           string `json:"price"`
	TotalAmount     string `json:"total_amount"`
	Fees            string `json:"fees,omitempty"`
	TransactionDate string `json:"transaction_date"`
	Notes           string `json:"notes,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// CreateInvestTransactionRequest содержит данные для создания сделки.
type CreateInvestTransactionRequest struct {
	Portfolio       string `json:"portfolio"`
	Asset           string `json:"asset"`
	Type            string `json:"type"`
	Quantity        string `json:"quantity"`
	Price           string `json:"price"`
	Fees            string `json:"fees,omitempty"`
	TransactionDate string `json:"transaction_date"`
	Notes           string `json:"notes,omitempty"`
}
