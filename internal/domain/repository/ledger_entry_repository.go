package repository

import "github.com/jhoicas/pos-backoffice/internal/domain/entity"

// LedgerFilter filtros de listado de entradas del ledger.
type LedgerFilter struct {
	ProductID string
	StoreID   string
	Page      int
	Limit     int
}

// LedgerEntryRepository define el puerto de persistencia del libro de
// movimientos. El contrato es append-only: no existen métodos de
// actualización ni borrado de entradas.
type LedgerEntryRepository interface {
	Create(entry *entity.LedgerEntry) error
	// List devuelve una página ordenada por transaction_date DESC con empate
	// resuelto por id ASC, más el total de entradas que cumplen el filtro.
	List(filter LedgerFilter) ([]*entity.LedgerEntry, int64, error)
	// ListByProduct devuelve el historial completo de un producto en orden de
	// confirmación ascendente, para reproducir (replay) su stock.
	ListByProduct(productID string) ([]*entity.LedgerEntry, error)
}
