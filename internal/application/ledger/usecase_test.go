package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/ledger"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetByIDForUpdate en el fake equivale a GetByID: la exclusión la aporta el
// mutex del fakeTxRunner, igual que el row lock la aporta la tx real.
func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.products[p.ID]; ok {
		cp := *p
		cp.SKU = existing.SKU     // inmutable
		cp.Stock = existing.Stock // solo UpdateStock lo escribe
		r.products[p.ID] = &cp
	}
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock int64, updatedBy string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[productID]; ok {
		p.Stock = stock
		p.UpdatedBy = updatedBy
		p.UpdatedAt = updatedAt
	}
	return nil
}

func (r *fakeProductRepo) SetStatus(id, status, updatedBy string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.Status = status
		p.UpdatedBy = updatedBy
		p.UpdatedAt = updatedAt
	}
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.products {
		cp := *p
		list = append(list, &cp)
	}
	return list, int64(len(list)), nil
}

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[string]*entity.Store
}

func newFakeStoreRepo(stores ...*entity.Store) *fakeStoreRepo {
	r := &fakeStoreRepo{stores: map[string]*entity.Store{}}
	for _, s := range stores {
		cp := *s
		r.stores[s.ID] = &cp
	}
	return r
}

func (r *fakeStoreRepo) Create(s *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *fakeStoreRepo) GetByID(id string) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoreRepo) GetByCode(code string) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stores {
		if s.Code == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStoreRepo) Update(s *entity.Store) error { return nil }

func (r *fakeStoreRepo) SetStatus(id, status, updatedBy string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[id]; ok {
		s.Status = status
	}
	return nil
}

func (r *fakeStoreRepo) List(filter repository.StoreFilter) ([]*entity.Store, int64, error) {
	return nil, 0, nil
}

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries []*entity.LedgerEntry
}

func (r *fakeEntryRepo) Create(e *entity.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeEntryRepo) List(filter repository.LedgerFilter) ([]*entity.LedgerEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.LedgerEntry
	for _, e := range r.entries {
		if filter.ProductID != "" && e.ProductID != filter.ProductID {
			continue
		}
		cp := *e
		list = append(list, &cp)
	}
	return list, int64(len(list)), nil
}

func (r *fakeEntryRepo) ListByProduct(productID string) ([]*entity.LedgerEntry, error) {
	list, _, err := r.List(repository.LedgerFilter{ProductID: productID})
	return list, err
}

func (r *fakeEntryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// fakeTxRunner serializa los callbacks con un mutex, como la transacción real
// serializa por producto con el row lock.
type fakeTxRunner struct {
	mu          sync.Mutex
	entryRepo   *fakeEntryRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	entryRepo repository.LedgerEntryRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.entryRepo, r.productRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "10000000-0000-0000-0000-000000000001"
	testStoreID   = "20000000-0000-0000-0000-000000000001"
	testActorID   = "30000000-0000-0000-0000-000000000001"
)

func activeProduct(stock int64) *entity.Product {
	return &entity.Product{
		ID:     testProductID,
		SKU:    "SKU-001",
		Name:   "Café molido 500g",
		Price:  decimal.NewFromInt(25),
		Cost:   decimal.NewFromInt(15),
		Stock:  stock,
		Status: entity.StatusActive,
	}
}

func activeStore() *entity.Store {
	return &entity.Store{
		ID:     testStoreID,
		Code:   "T-01",
		Name:   "Tienda Centro",
		Status: entity.StatusActive,
	}
}

type fixture struct {
	uc          *ledger.RecordTransactionUseCase
	productRepo *fakeProductRepo
	storeRepo   *fakeStoreRepo
	entryRepo   *fakeEntryRepo
}

func newFixture(product *entity.Product, stores ...*entity.Store) *fixture {
	productRepo := newFakeProductRepo()
	if product != nil {
		productRepo.Create(product)
	}
	storeRepo := newFakeStoreRepo(stores...)
	entryRepo := &fakeEntryRepo{}
	runner := &fakeTxRunner{entryRepo: entryRepo, productRepo: productRepo}
	return &fixture{
		uc:          ledger.NewRecordTransactionUseCase(runner, productRepo, storeRepo),
		productRepo: productRepo,
		storeRepo:   storeRepo,
		entryRepo:   entryRepo,
	}
}

func strPtr(s string) *string { return &s }

func decreaseInput(qty int64) ledger.RecordTransactionInput {
	return ledger.RecordTransactionInput{
		Type:      entity.TxTypeDecrease,
		ProductID: testProductID,
		StoreID:   strPtr(testStoreID),
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(25),
		ActorID:   testActorID,
	}
}

func increaseInput(qty int64) ledger.RecordTransactionInput {
	return ledger.RecordTransactionInput{
		Type:      entity.TxTypeIncrease,
		ProductID: testProductID,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(15),
		ActorID:   testActorID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Record — casos de éxito
// ──────────────────────────────────────────────────────────────────────────────

// INCREASE suma al stock y confirma la entrada con total = precio × cantidad.
func TestRecord_IncreaseSumaStock(t *testing.T) {
	f := newFixture(activeProduct(10))

	entry, err := f.uc.Record(context.Background(), increaseInput(5))
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, entity.TxTypeIncrease, entry.Type)
	assert.Equal(t, int64(5), entry.Quantity)
	assert.True(t, entry.TotalAmount.Equal(decimal.NewFromInt(75)),
		"total_amount debe ser unit_price × quantity (15 × 5 = 75)")
	assert.Nil(t, entry.StoreID, "INCREASE no lleva tienda")
	assert.Equal(t, testActorID, entry.CreatedBy)

	p, _ := f.productRepo.GetByID(testProductID)
	assert.Equal(t, int64(15), p.Stock, "stock 10 + 5 = 15")
	assert.Equal(t, 1, f.entryRepo.count())
}

// DECREASE resta del stock cuando hay suficiente.
func TestRecord_DecreaseRestaStock(t *testing.T) {
	f := newFixture(activeProduct(10), activeStore())

	entry, err := f.uc.Record(context.Background(), decreaseInput(4))
	require.NoError(t, err)

	assert.Equal(t, entity.TxTypeDecrease, entry.Type)
	require.NotNil(t, entry.StoreID)
	assert.Equal(t, testStoreID, *entry.StoreID)
	assert.True(t, entry.TotalAmount.Equal(decimal.NewFromInt(100)),
		"total_amount 25 × 4 = 100")

	p, _ := f.productRepo.GetByID(testProductID)
	assert.Equal(t, int64(6), p.Stock, "stock 10 - 4 = 6")
}

// DECREASE que deja el stock exactamente en cero es válido.
func TestRecord_DecreaseHastaCeroEsValido(t *testing.T) {
	f := newFixture(activeProduct(10), activeStore())

	_, err := f.uc.Record(context.Background(), decreaseInput(10))
	require.NoError(t, err)

	p, _ := f.productRepo.GetByID(testProductID)
	assert.Equal(t, int64(0), p.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Record — precondiciones y rechazos
// ──────────────────────────────────────────────────────────────────────────────

// DECREASE con stock insuficiente: ni entrada ni cambio de stock.
func TestRecord_DecreaseStockInsuficiente(t *testing.T) {
	f := newFixture(activeProduct(3), activeStore())

	_, err := f.uc.Record(context.Background(), decreaseInput(4))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := f.productRepo.GetByID(testProductID)
	assert.Equal(t, int64(3), p.Stock, "un rechazo no toca el stock")
	assert.Equal(t, 0, f.entryRepo.count(), "un rechazo no agrega entradas")
}

// Tipo de transacción desconocido → entrada inválida.
func TestRecord_TipoInvalido(t *testing.T) {
	f := newFixture(activeProduct(10), activeStore())
	in := increaseInput(1)
	in.Type = "TRANSFER"

	_, err := f.uc.Record(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cantidad cero o negativa → entrada inválida, aun con todo lo demás correcto.
func TestRecord_CantidadNoPositiva(t *testing.T) {
	f := newFixture(activeProduct(10), activeStore())

	for _, qty := range []int64{0, -5} {
		_, err := f.uc.Record(context.Background(), increaseInput(qty))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity %d debe rechazarse", qty)
	}
	assert.Equal(t, 0, f.entryRepo.count())
}

// Precio unitario cero o negativo → entrada inválida.
func TestRecord_PrecioNoPositivo(t *testing.T) {
	f := newFixture(activeProduct(10), activeStore())
	in := increaseInput(1)
	in.UnitPrice = decimal.Zero

	_, err := f.uc.Record(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La validación estructural gana sobre la existencia del producto: con
// cantidad inválida Y producto inexistente, el error es de validación.
func TestRecord_OrdenDePrecondiciones(t *testing.T) {
	f := newFixture(nil) // sin productos
	in := increaseInput(0)
	in.ProductID = "99999999-0000-0000-0000-000000000000"

	_, err := f.uc.Record(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"la cantidad inválida debe reportarse antes que el producto inexistente")
}

// Producto inexistente → not found.
func TestRecord_ProductoInexistente(t *testing.T) {
	f := newFixture(nil, activeStore())

	_, err := f.uc.Record(context.Background(), increaseInput(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Producto INACTIVE se comporta como inexistente para el ledger.
func TestRecord_ProductoInactivo(t *testing.T) {
	p := activeProduct(10)
	p.Status = entity.StatusInactive
	f := newFixture(p, activeStore())

	_, err := f.uc.Record(context.Background(), increaseInput(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// DECREASE sin tienda → entrada inválida (no not found: la tienda es un campo
// requerido del request, no un recurso consultado).
func TestRecord_DecreaseSinTienda(t *testing.T) {
	f := newFixture(activeProduct(10), activeStore())
	in := decreaseInput(1)
	in.StoreID = nil

	_, err := f.uc.Record(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// DECREASE con tienda desconocida o inactiva → entrada inválida.
func TestRecord_DecreaseTiendaInvalida(t *testing.T) {
	inactive := activeStore()
	inactive.Status = entity.StatusInactive
	f := newFixture(activeProduct(10), inactive)

	// Tienda inactiva
	_, err := f.uc.Record(context.Background(), decreaseInput(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Tienda inexistente
	in := decreaseInput(1)
	in.StoreID = strPtr("no-existe")
	_, err = f.uc.Record(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// INCREASE con tienda → entrada inválida (las entradas de stock no se asocian
// a una tienda).
func TestRecord_IncreaseConTienda(t *testing.T) {
	f := newFixture(activeProduct(10), activeStore())
	in := increaseInput(1)
	in.StoreID = strPtr(testStoreID)

	_, err := f.uc.Record(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Record — serialización por producto
// ──────────────────────────────────────────────────────────────────────────────

// Dos DECREASE concurrentes de 10 sobre stock 10: exactamente una gana, la
// otra recibe stock insuficiente y el stock termina en 0 (nunca negativo).
func TestRecord_DecreasesConcurrentesSoloUnaGana(t *testing.T) {
	f := newFixture(activeProduct(10), activeStore())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Record(context.Background(), decreaseInput(10))
		}(i)
	}
	wg.Wait()

	var okCount, insufficientCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		default:
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			insufficientCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una transacción debe confirmarse")
	assert.Equal(t, 1, insufficientCount)

	p, _ := f.productRepo.GetByID(testProductID)
	assert.Equal(t, int64(0), p.Stock)
	assert.Equal(t, 1, f.entryRepo.count())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests replay y conciliación
// ──────────────────────────────────────────────────────────────────────────────

// El stock derivado del historial coincide con el contador tras una mezcla de
// transacciones.
func TestReconcile_StockConsistenteTrasMezcla(t *testing.T) {
	f := newFixture(activeProduct(0), activeStore())
	queries := ledger.NewLedgerQueryUseCase(f.entryRepo, f.productRepo)

	_, err := f.uc.Record(context.Background(), increaseInput(20))
	require.NoError(t, err)
	_, err = f.uc.Record(context.Background(), decreaseInput(7))
	require.NoError(t, err)
	_, err = f.uc.Record(context.Background(), increaseInput(3))
	require.NoError(t, err)

	out, err := queries.Reconcile(context.Background(), testProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(16), out.LedgerStock, "20 - 7 + 3 = 16")
	assert.Equal(t, int64(16), out.CachedStock)
	assert.True(t, out.Consistent)
}

// Reconcile de un producto inexistente → not found.
func TestReconcile_ProductoInexistente(t *testing.T) {
	f := newFixture(nil)
	queries := ledger.NewLedgerQueryUseCase(f.entryRepo, f.productRepo)

	_, err := queries.Reconcile(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ReplayStock es una reducción pura sobre la secuencia de entradas.
func TestReplayStock(t *testing.T) {
	entries := []*entity.LedgerEntry{
		{Type: entity.TxTypeIncrease, Quantity: 100},
		{Type: entity.TxTypeDecrease, Quantity: 40},
		{Type: entity.TxTypeDecrease, Quantity: 10},
		{Type: entity.TxTypeIncrease, Quantity: 5},
	}
	assert.Equal(t, int64(55), ledger.ReplayStock(entries))
	assert.Equal(t, int64(0), ledger.ReplayStock(nil), "sin entradas el stock derivado es 0")
}
