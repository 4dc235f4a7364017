package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

// LedgerEntryRepo implementación del puerto LedgerEntryRepository sobre
// PostgreSQL (usable con pool o tx). El libro es append-only: este adaptador
// no expone UPDATE ni DELETE sobre stock_transactions.
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository construye el adaptador de persistencia del ledger. Pasar pool o tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

// Create agrega una entrada al ledger.
func (r *LedgerEntryRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO stock_transactions (id, transaction_type, product_id, store_id, quantity, unit_price, total_amount, notes, transaction_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Type, entry.ProductID, entry.StoreID, entry.Quantity,
		entry.UnitPrice, entry.TotalAmount, entry.Notes, entry.TransactionDate, entry.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// List devuelve una página de entradas (transaction_date DESC, empate por id
// ASC) con nombres denormalizados de producto, tienda y usuario, más el total.
func (r *LedgerEntryRepo) List(filter repository.LedgerFilter) ([]*entity.LedgerEntry, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where += fmt.Sprintf(` AND t.product_id = $%d`, len(args))
	}
	if filter.StoreID != "" {
		args = append(args, filter.StoreID)
		where += fmt.Sprintf(` AND t.store_id = $%d`, len(args))
	}

	var total int64
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_transactions t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := `
		SELECT t.id, t.transaction_type, t.product_id, t.store_id, t.quantity,
		       t.unit_price, t.total_amount, t.notes, t.transaction_date, t.created_by,
		       p.name, COALESCE(s.name, ''), COALESCE(u.name, '')
		FROM stock_transactions t
		JOIN products p ON p.id = t.product_id
		LEFT JOIN stores s ON s.id = t.store_id
		LEFT JOIN users u ON u.id = t.created_by` + where +
		fmt.Sprintf(` ORDER BY t.transaction_date DESC, t.id ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.ProductID, &e.StoreID, &e.Quantity,
			&e.UnitPrice, &e.TotalAmount, &e.Notes, &e.TransactionDate, &e.CreatedBy,
			&e.ProductName, &e.StoreName, &e.CreatedByName); err != nil {
			return nil, 0, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}

// ListByProduct devuelve el historial completo de un producto en orden de
// confirmación ascendente, para reproducir (replay) su stock.
func (r *LedgerEntryRepo) ListByProduct(productID string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, transaction_type, product_id, store_id, quantity, unit_price, total_amount, notes, transaction_date, created_by
		FROM stock_transactions
		WHERE product_id = $1
		ORDER BY transaction_date ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.ProductID, &e.StoreID, &e.Quantity,
			&e.UnitPrice, &e.TotalAmount, &e.Notes, &e.TransactionDate, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
