package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del ledger.
const (
	TxTypeIncrease = "INCREASE" // entrada de stock desde proveedor
	TxTypeDecrease = "DECREASE" // salida de stock hacia una tienda
)

// LedgerEntry es la unidad de auditoría inmutable del inventario: cada cambio
// de stock de un producto existe como una entrada append-only. No hay update
// ni delete; un error se corrige agregando una entrada compensatoria.
//
// TotalAmount se calcula una sola vez al confirmar (Quantity × UnitPrice) y
// nunca se recalcula, aunque el precio del producto cambie después.
// TransactionDate se asigna en el servidor como instante UTC.
type LedgerEntry struct {
	ID              string
	Type            string  // INCREASE, DECREASE
	ProductID       string
	StoreID         *string // nil salvo en DECREASE
	Quantity        int64   // siempre positivo
	UnitPrice       decimal.Decimal
	TotalAmount     decimal.Decimal
	Notes           string
	TransactionDate time.Time
	CreatedBy       string

	// Campos desnormalizados para listados (JOIN en la consulta, no persistidos).
	ProductName   string
	StoreName     string
	CreatedByName string
}
