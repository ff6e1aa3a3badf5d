package dto

// PaginatedResponse содержит страницу коллекции ресурсов в формате DRF.
type PaginatedResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ListParams содержит общие параметры списочных запросов.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
}

// Wallet содержит кошелек пользователя.
// Денежные суммы передаются десятичными строками.
type Wallet struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	WalletType     string `json:"wallet_type"`
	Currency       string `json:"currency"`
	InitialBalance string `json:"initial_balance"`
	CurrentBalance string `json:"current_balance"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// CreateWalletRequest содержит данные для создания или обновления кошелька.
type CreateWalletRequest struct {
	Name           string `json:"name"`
	WalletType     string `json:"wallet_type"`
	Currency       string `json:"currency"`
	InitialBalance string `json:"initial_balance"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

// Transaction содержит операцию по кошельку.
type Transaction struct {
	ID              int64   `json:"id"`
	Wallet          int64   `json:"wallet"`
	WalletName      string  `json:"wallet_name"`
	Category        *int64  `json:"category,omitempty"`
	CategoryName    string  `json:"category_name"`
	Amount          string  `json:"amount"`
	Type            string  `json:"type"`
	Description     string  `json:"description,omitempty"`
	TransactionDate string  `json:"transaction_date"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
	TagIDs          []int64 `json:"tag_ids"`
}

// CreateTransactionRequest содержит данные для создания операции.
type CreateTransactionRequest struct {
	Wallet          int64   `json:"wallet"`
	Category        *int64  `json:"category,omitempty"`
	Amount          string  `json:"amount"`
	Type            string  `json:"type"`
	Description     string  `json:"description,omitempty"`
	TransactionDate string  `json:"transaction_date"`
	TagIDs          []int64 `json:"tag_ids,omitempty"`
}

// Category содержит категорию операций.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateCategoryRequest содержит данные для создания категории.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// Tag содержит метку операций.
type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// CreateTagRequest содержит данные для создания метки.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// Transfer содержит перевод между кошельками.
type Transfer struct {
	ID             int64  `json:"id"`
	FromWallet     int64  `json:"from_wallet"`
	FromWalletName string `json:"from_wallet_name"`
	ToWallet       int64  `json:"to_wallet"`
	ToWalletName   string `json:"to_wallet_name"`
	Amount         string `json:"amount"`
	Description    string `json:"description,omitempty"`
	TransferDate   string `json:"transfer_date"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// CreateTransferRequest содержит данные для создания перевода.
type CreateTransferRequest struct {
	FromWallet   int64  `json:"from_wallet"`
	ToWallet     int64  `json:"to_wallet"`
	Amount       string `json:"amount"`
	Description  string `json:"description,omitempty"`
	TransferDate string `json:"transfer_date"`
}
