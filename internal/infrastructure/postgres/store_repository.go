package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, code, name, address, phone, status, created_at, updated_at, created_by, updated_by`

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Code, store.Name, store.Address, store.Phone, store.Status,
		store.CreatedAt, store.UpdatedAt, store.CreatedBy, store.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: code %q ya existe", domain.ErrDuplicate, store.Code)
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get store")
}

// GetByCode obtiene una tienda por código, sin distinguir mayúsculas.
func (r *StoreRepo) GetByCode(code string) (*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE LOWER(code) = LOWER($1)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get store by code")
}

// Update actualiza nombre, dirección y teléfono. El código es inmutable.
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores SET name = $2, address = $3, phone = $4, updated_at = $5, updated_by = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Address, store.Phone, store.UpdatedAt, store.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

// SetStatus cambia el estado de la tienda (ACTIVE/INACTIVE).
func (r *StoreRepo) SetStatus(id, status, updatedBy string, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stores SET status = $2, updated_by = $3, updated_at = $4 WHERE id = $1`,
		id, status, updatedBy, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("set store status: %w", err)
	}
	return nil
}

// List lista tiendas con paginación y total. Search filtra por código o nombre.
func (r *StoreRepo) List(filter repository.StoreFilter) ([]*entity.Store, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (code ILIKE $%d OR name ILIKE $%d)`, len(args), len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM stores`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)
	query := `SELECT ` + storeColumns + ` FROM stores` + where +
		fmt.Sprintf(` ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Address, &s.Phone, &s.Status,
			&s.CreatedAt, &s.UpdatedAt, &s.CreatedBy, &s.UpdatedBy); err != nil {
			return nil, 0, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

func (r *StoreRepo) scanOne(row pgx.Row, op string) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Address, &s.Phone, &s.Status,
		&s.CreatedAt, &s.UpdatedAt, &s.CreatedBy, &s.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
