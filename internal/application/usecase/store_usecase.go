package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para tiendas. El único invariante propio es
// la unicidad del código; las tiendas además participan como destino de las
// salidas DECREASE del ledger.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una tienda. El código es único sin distinguir mayúsculas.
func (uc *StoreUseCase) Create(in dto.CreateStoreRequest, actorID string) (*dto.StoreResponse, error) {
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code %q ya existe", domain.ErrDuplicate, in.Code)
	}
	now := time.Now().UTC()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actorID,
		UpdatedBy: actorID,
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID.
func (uc *StoreUseCase) GetByID(id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, id)
	}
	return toStoreResponse(store), nil
}

// Update actualiza nombre, dirección y teléfono. Code es inmutable.
func (uc *StoreUseCase) Update(id string, in dto.UpdateStoreRequest, actorID string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		store.Name = *in.Name
	}
	if in.Address != nil {
		store.Address = *in.Address
	}
	if in.Phone != nil {
		store.Phone = *in.Phone
	}
	store.UpdatedAt = time.Now().UTC()
	store.UpdatedBy = actorID
	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// SetStatus cambia el estado de la tienda (ACTIVE/INACTIVE).
func (uc *StoreUseCase) SetStatus(id, status, actorID string) error {
	if status != entity.StatusActive && status != entity.StatusInactive {
		return fmt.Errorf("%w: status debe ser ACTIVE o INACTIVE", domain.ErrInvalidInput)
	}
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("%w: tienda %s", domain.ErrNotFound, id)
	}
	return uc.repo.SetStatus(id, status, actorID, time.Now().UTC())
}

// Delete es un borrado lógico: pasa la tienda a INACTIVE conservando el
// historial de ventas que la referencia.
func (uc *StoreUseCase) Delete(id, actorID string) error {
	return uc.SetStatus(id, entity.StatusInactive, actorID)
}

// List devuelve una página de tiendas ordenada por fecha de creación
// ascendente, más el total.
func (uc *StoreUseCase) List(in dto.StoreListRequest) (*dto.StoreListResponse, error) {
	in.DefaultPage()
	stores, total, err := uc.repo.List(repository.StoreFilter{
		Search:   in.Search,
		Status:   in.Status,
		Page:     in.Page,
		PageSize: in.PageSize,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: in.Page, PageSize: in.PageSize, Total: total},
	}, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
