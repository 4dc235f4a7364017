package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordTransactionRequest body para POST /api/transactions.
// StoreID es obligatorio en DECREASE y debe omitirse en INCREASE.
type RecordTransactionRequest struct {
	Type      string          `json:"transaction_type" validate:"required,oneof=INCREASE DECREASE"`
	ProductID string          `json:"product_id" validate:"required"`
	StoreID   *string         `json:"store_id,omitempty"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes" validate:"max=500"`
}

// LedgerEntryResponse salida de una entrada del ledger.
type LedgerEntryResponse struct {
	ID              string          `json:"id"`
	Type            string          `json:"transaction_type"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	StoreID         *string         `json:"store_id"`
	StoreName       string          `json:"store_name,omitempty"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Notes           string          `json:"notes,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedBy       string          `json:"created_by"`
	CreatedByName   string          `json:"created_by_name,omitempty"`
}

// LedgerListRequest filtros para GET /api/transactions.
type LedgerListRequest struct {
	ProductID string `query:"product_id"`
	StoreID   string `query:"store_id"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
}

// LedgerListResponse lista paginada de entradas, más reciente primero.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReconcileResponse resultado de reproducir el historial de un producto.
type ReconcileResponse struct {
	ProductID   string `json:"product_id"`
	LedgerStock int64  `json:"ledger_stock"`
	CachedStock int64  `json:"cached_stock"`
	Consistent  bool   `json:"consistent"`
}
