package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/ledger"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El contador de stock no se
// toca por esta vía: nace con el stock inicial (entrada de apertura en el
// ledger) y de ahí en adelante solo lo escribe el motor de transacciones.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner ledger.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner ledger.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto. El SKU es único sin distinguir mayúsculas. Si
// initial_stock > 0, la entrada INCREASE de apertura se confirma en la misma
// transacción que el producto: ambos o ninguno.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actorID string) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: cost no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.InitialStock < 0 {
		return nil, fmt.Errorf("%w: initial_stock no puede ser negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %q ya existe", domain.ErrDuplicate, in.SKU)
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.InitialStock,
		Status:      entity.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
	}
	err = uc.txRunner.Run(ctx, func(
		entryRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		return ledger.OpeningEntryInTx(entryRepo, product, actorID, now)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, descripción, precio y costo. SKU y Stock son
// inmutables por esta vía.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest, actorID string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: cost no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Cost = *in.Cost
	}
	product.UpdatedAt = time.Now().UTC()
	product.UpdatedBy = actorID
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// SetStatus cambia el estado del producto (ACTIVE/INACTIVE).
func (uc *ProductUseCase) SetStatus(id, status, actorID string) error {
	if status != entity.StatusActive && status != entity.StatusInactive {
		return fmt.Errorf("%w: status debe ser ACTIVE o INACTIVE", domain.ErrInvalidInput)
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return uc.repo.SetStatus(id, status, actorID, time.Now().UTC())
}

// Delete es un borrado lógico: pasa el producto a INACTIVE. La identidad y el
// historial en el ledger se conservan para que la auditoría siga atribuible.
func (uc *ProductUseCase) Delete(id, actorID string) error {
	return uc.SetStatus(id, entity.StatusInactive, actorID)
}

// List devuelve una página de productos ordenada por fecha de creación
// ascendente, más el total. Search filtra por SKU o nombre (substring,
// case-insensitive).
func (uc *ProductUseCase) List(in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	products, total, err := uc.repo.List(repository.ProductFilter{
		Search:   in.Search,
		Status:   in.Status,
		Page:     in.Page,
		PageSize: in.PageSize,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: in.Page, PageSize: in.PageSize, Total: total},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
