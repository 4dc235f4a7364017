package repository

import (
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// ProductFilter filtros de listado de productos.
// Search busca por SKU o nombre (substring, case-insensitive).
type ProductFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock es de uso exclusivo del motor del ledger, dentro de su
// transacción; ninguna otra ruta de escritura toca el contador de stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido
	// sobre un repositorio atado a una transacción.
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int64, updatedBy string, updatedAt time.Time) error
	SetStatus(id, status, updatedBy string, updatedAt time.Time) error
	List(filter ProductFilter) ([]*entity.Product, int64, error)
}
