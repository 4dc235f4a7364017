package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// LedgerQueryUseCase consultas de solo lectura sobre el ledger: listado
// paginado y conciliación de stock por replay del historial.
type LedgerQueryUseCase struct {
	entryRepo   repository.LedgerEntryRepository
	productRepo repository.ProductRepository
}

// NewLedgerQueryUseCase construye el caso de uso.
func NewLedgerQueryUseCase(
	entryRepo repository.LedgerEntryRepository,
	productRepo repository.ProductRepository,
) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{entryRepo: entryRepo, productRepo: productRepo}
}

// List devuelve una página de entradas (más reciente primero, empates por id
// ascendente) más el total que cumple el filtro.
func (uc *LedgerQueryUseCase) List(ctx context.Context, in dto.LedgerListRequest) (*dto.LedgerListResponse, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = 20
	}
	if in.Limit > 100 {
		in.Limit = 100
	}
	entries, total, err := uc.entryRepo.List(repository.LedgerFilter{
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Page:      in.Page,
		Limit:     in.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToLedgerEntryResponse(e))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: in.Page, PageSize: in.Limit, Total: total},
	}, nil
}

// Reconcile reproduce el historial completo de un producto y compara el stock
// derivado con el contador cacheado. Consistent en false señala una
// divergencia que el motor del ledger, por diseño, no debería permitir.
func (uc *LedgerQueryUseCase) Reconcile(ctx context.Context, productID string) (*dto.ReconcileResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	entries, err := uc.entryRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	ledgerStock := ReplayStock(entries)
	return &dto.ReconcileResponse{
		ProductID:   productID,
		LedgerStock: ledgerStock,
		CachedStock: product.Stock,
		Consistent:  ledgerStock == product.Stock,
	}, nil
}

// ReplayStock deriva el stock de una secuencia de entradas:
// Σ(INCREASE.Quantity) − Σ(DECREASE.Quantity).
func ReplayStock(entries []*entity.LedgerEntry) int64 {
	var stock int64
	for _, e := range entries {
		switch e.Type {
		case entity.TxTypeIncrease:
			stock += e.Quantity
		case entity.TxTypeDecrease:
			stock -= e.Quantity
		}
	}
	return stock
}

// ToLedgerEntryResponse proyecta una entrada del ledger a su DTO de salida.
func ToLedgerEntryResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:              e.ID,
		Type:            e.Type,
		ProductID:       e.ProductID,
		ProductName:     e.ProductName,
		StoreID:         e.StoreID,
		StoreName:       e.StoreName,
		Quantity:        e.Quantity,
		UnitPrice:       e.UnitPrice,
		TotalAmount:     e.TotalAmount,
		Notes:           e.Notes,
		TransactionDate: e.TransactionDate,
		CreatedBy:       e.CreatedBy,
		CreatedByName:   e.CreatedByName,
	}
}
