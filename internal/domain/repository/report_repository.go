package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter acota los reportes por tienda y rango de fechas (UTC).
// Campos vacíos/nil = sin restricción.
type ReportFilter struct {
	StoreID string
	From    *time.Time
	To      *time.Time
}

// SummaryResult totales del conjunto filtrado de transacciones.
type SummaryResult struct {
	TotalTransactions   int64
	IncreaseCount       int64
	DecreaseCount       int64
	TotalIncreaseAmount decimal.Decimal
	TotalDecreaseAmount decimal.Decimal
}

// StoreSalesResult ventas agregadas de una tienda (solo DECREASE).
type StoreSalesResult struct {
	StoreID          string
	StoreCode        string
	StoreName        string
	TransactionCount int64
	TotalSales       decimal.Decimal
}

// ProductSalesResult ventas agregadas de un producto (solo DECREASE).
type ProductSalesResult struct {
	ProductID   string
	SKU         string
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal
}

// ReportRepository consultas de solo lectura sobre el ledger confirmado.
// Todo resultado debe ser reproducible re-ejecutando la secuencia de entradas:
// el agregador no mantiene estado propio.
type ReportRepository interface {
	GetSummary(ctx context.Context, filter ReportFilter) (*SummaryResult, error)
	GetSalesByStore(ctx context.Context, filter ReportFilter) ([]StoreSalesResult, error)
	GetTopProducts(ctx context.Context, filter ReportFilter, limit int) ([]ProductSalesResult, error)
}
