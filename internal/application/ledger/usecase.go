package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// RecordTransactionUseCase registra transacciones de stock de forma
// transaccional, con bloqueo de fila sobre el producto (SELECT FOR UPDATE) y
// Commit/Rollback. Es el único componente con permiso de escribir el contador
// de stock de un producto.
type RecordTransactionUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

// NewRecordTransactionUseCase construye el caso de uso.
func NewRecordTransactionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

// RecordTransactionInput entrada para registrar una transacción de stock.
// StoreID es obligatorio en DECREASE y debe ser nil en INCREASE.
type RecordTransactionInput struct {
	Type      string
	ProductID string
	StoreID   *string
	Quantity  int64
	UnitPrice decimal.Decimal
	Notes     string
	ActorID   string
}

// Record valida las precondiciones en orden (la primera falla gana), abre la
// transacción, bloquea la fila del producto, agrega la entrada y actualiza el
// stock. Si algo falla, ni la entrada ni el contador cambian.
//
// Orden de precondiciones:
//  1. Quantity > 0 y UnitPrice > 0            → ErrInvalidInput
//  2. Producto existente y ACTIVE             → ErrNotFound
//  3. StoreID presente y ACTIVE en DECREASE;
//     ausente en INCREASE                     → ErrInvalidInput
//  4. DECREASE: stock - qty >= 0              → ErrInsufficientStock
func (uc *RecordTransactionUseCase) Record(ctx context.Context, in RecordTransactionInput) (*entity.LedgerEntry, error) {
	if in.Type != entity.TxTypeIncrease && in.Type != entity.TxTypeDecrease {
		return nil, fmt.Errorf("%w: transaction_type debe ser INCREASE o DECREASE", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !in.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: unit_price debe ser mayor que cero", domain.ErrInvalidInput)
	}

	// Verificación temprana del producto; se repite bajo el lock dentro de la tx.
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status != entity.StatusActive {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	switch in.Type {
	case entity.TxTypeDecrease:
		if in.StoreID == nil || *in.StoreID == "" {
			return nil, fmt.Errorf("%w: store_id es requerido en DECREASE", domain.ErrInvalidInput)
		}
		store, err := uc.storeRepo.GetByID(*in.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil || store.Status != entity.StatusActive {
			return nil, fmt.Errorf("%w: store_id no resuelve a una tienda activa", domain.ErrInvalidInput)
		}
	case entity.TxTypeIncrease:
		if in.StoreID != nil {
			return nil, fmt.Errorf("%w: store_id no aplica en INCREASE", domain.ErrInvalidInput)
		}
	}

	var entry *entity.LedgerEntry

	// La lectura del stock, la verificación >= 0, el append de la entrada y la
	// escritura del contador forman una sola unidad de trabajo por producto.
	err = uc.txRunner.Run(ctx, func(
		entryRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		locked, err := productRepo.GetByIDForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil || locked.Status != entity.StatusActive {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}

		newStock := locked.Stock
		if in.Type == entity.TxTypeIncrease {
			newStock += in.Quantity
		} else {
			if locked.Stock < in.Quantity {
				return fmt.Errorf("%w: stock actual %d, solicitado %d",
					domain.ErrInsufficientStock, locked.Stock, in.Quantity)
			}
			newStock -= in.Quantity
		}

		now := time.Now().UTC()
		e := &entity.LedgerEntry{
			ID:              uuid.New().String(),
			Type:            in.Type,
			ProductID:       in.ProductID,
			StoreID:         in.StoreID,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			TotalAmount:     in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
			Notes:           in.Notes,
			TransactionDate: now,
			CreatedBy:       in.ActorID,
		}
		if err := entryRepo.Create(e); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(in.ProductID, newStock, in.ActorID, now); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// OpeningEntryInTx agrega la entrada INCREASE sintética de apertura de un
// producto recién creado, usando los repositorios de la transacción del
// caller (la misma en la que se insertó el producto). Así la invariante
// stock == Σ(INCREASE) − Σ(DECREASE) se cumple desde el primer día sin caso
// especial. El unit_price de apertura es el costo del producto.
func OpeningEntryInTx(
	entryRepo repository.LedgerEntryRepository,
	product *entity.Product,
	actorID string,
	now time.Time,
) error {
	if product.Stock <= 0 {
		return nil
	}
	qty := decimal.NewFromInt(product.Stock)
	e := &entity.LedgerEntry{
		ID:              uuid.New().String(),
		Type:            entity.TxTypeIncrease,
		ProductID:       product.ID,
		Quantity:        product.Stock,
		UnitPrice:       product.Cost,
		TotalAmount:     product.Cost.Mul(qty),
		Notes:           "Stock inicial",
		TransactionDate: now,
		CreatedBy:       actorID,
	}
	return entryRepo.Create(e)
}
