package dto

import "github.com/shopspring/decimal"

// ReportRequest filtros comunes de los reportes (tienda y rango de fechas).
// From/To en formato RFC 3339 o fecha simple (2006-01-02), interpretados en UTC.
type ReportRequest struct {
	StoreID string `query:"store_id"`
	From    string `query:"from"`
	To      string `query:"to"`
}

// SummaryResponse resumen del conjunto filtrado de transacciones.
// GrossMargin = TotalDecreaseAmount - TotalIncreaseAmount.
type SummaryResponse struct {
	TotalTransactions   int64           `json:"total_transactions"`
	TotalIncreaseAmount decimal.Decimal `json:"total_increase_amount"`
	TotalDecreaseAmount decimal.Decimal `json:"total_decrease_amount"`
	IncreaseCount       int64           `json:"increase_count"`
	DecreaseCount       int64           `json:"decrease_count"`
	GrossMargin         decimal.Decimal `json:"gross_margin"`
}

// StoreSalesDTO ventas agregadas por tienda.
type StoreSalesDTO struct {
	StoreID          string          `json:"store_id"`
	StoreCode        string          `json:"store_code"`
	StoreName        string          `json:"store_name"`
	TransactionCount int64           `json:"transaction_count"`
	TotalSales       decimal.Decimal `json:"total_sales"`
}

// TopProductDTO ventas agregadas por producto.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}
