package repository

import (
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// StoreFilter filtros de listado de tiendas.
type StoreFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	GetByCode(code string) (*entity.Store, error)
	Update(store *entity.Store) error
	SetStatus(id, status, updatedBy string, updatedAt time.Time) error
	List(filter StoreFilter) ([]*entity.Store, int64, error)
}
