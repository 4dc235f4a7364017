package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados compartidos por Product y Store.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Product representa un producto del catálogo.
// Stock es un contador derivado: solo el motor del libro de movimientos
// (ledger) puede modificarlo; siempre equivale a la suma de sus entradas
// INCREASE menos sus DECREASE.
type Product struct {
	ID          string
	SKU         string // único por catálogo (case-insensitive), inmutable tras la creación
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de compra
	Stock       int64
	Status      string // ACTIVE, INACTIVE
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	UpdatedBy   string
}
