package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre el ledger confirmado. Cada
// reporte se calcula agregando stock_transactions al momento de la consulta;
// no hay tablas de resumen que puedan desincronizarse del libro.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// reportWhere arma el WHERE común de los reportes a partir del filtro.
// El alias de stock_transactions en la consulta debe ser "t".
func reportWhere(filter repository.ReportFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.StoreID != "" {
		args = append(args, filter.StoreID)
		where += fmt.Sprintf(` AND t.store_id = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(` AND t.transaction_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(` AND t.transaction_date <= $%d`, len(args))
	}
	return where, args
}

// GetSummary totaliza el conjunto filtrado: conteos por tipo y montos
// acumulados de INCREASE y DECREASE.
func (r *ReportRepo) GetSummary(ctx context.Context, filter repository.ReportFilter) (*repository.SummaryResult, error) {
	where, args := reportWhere(filter)
	query := `
	SELECT
	    COUNT(*)                                                                     AS total_transactions,
	    COUNT(*) FILTER (WHERE t.transaction_type = 'INCREASE')                      AS increase_count,
	    COUNT(*) FILTER (WHERE t.transaction_type = 'DECREASE')                      AS decrease_count,
	    COALESCE(SUM(t.total_amount) FILTER (WHERE t.transaction_type = 'INCREASE'), 0) AS total_increase_amount,
	    COALESCE(SUM(t.total_amount) FILTER (WHERE t.transaction_type = 'DECREASE'), 0) AS total_decrease_amount
	FROM stock_transactions t` + where

	var res repository.SummaryResult
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&res.TotalTransactions,
		&res.IncreaseCount,
		&res.DecreaseCount,
		&res.TotalIncreaseAmount,
		&res.TotalDecreaseAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSummary: %w", err)
	}
	return &res, nil
}

// GetSalesByStore agrupa las salidas (DECREASE) por tienda. Orden
// determinista: total_sales DESC con empate resuelto por id de tienda ASC.
func (r *ReportRepo) GetSalesByStore(ctx context.Context, filter repository.ReportFilter) ([]repository.StoreSalesResult, error) {
	where, args := reportWhere(filter)
	query := `
	SELECT
	    s.id                                 AS store_id,
	    s.code                               AS store_code,
	    s.name                               AS store_name,
	    COUNT(*)                             AS transaction_count,
	    COALESCE(SUM(t.total_amount), 0)     AS total_sales
	FROM stock_transactions t
	JOIN stores s ON s.id = t.store_id` + where + `
	  AND t.transaction_type = 'DECREASE'
	GROUP BY s.id, s.code, s.name
	ORDER BY total_sales DESC, s.id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSalesByStore: %w", err)
	}
	defer rows.Close()

	var results []repository.StoreSalesResult
	for rows.Next() {
		var row repository.StoreSalesResult
		if err := rows.Scan(
			&row.StoreID,
			&row.StoreCode,
			&row.StoreName,
			&row.TransactionCount,
			&row.TotalSales,
		); err != nil {
			return nil, fmt.Errorf("reports.GetSalesByStore scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts ranquea productos por ingreso de salidas (DECREASE). Orden
// determinista: revenue DESC con empate resuelto por id de producto ASC.
func (r *ReportRepo) GetTopProducts(ctx context.Context, filter repository.ReportFilter, limit int) ([]repository.ProductSalesResult, error) {
	where, args := reportWhere(filter)
	args = append(args, limit)
	query := `
	SELECT
	    p.id                                 AS product_id,
	    p.sku                                AS sku,
	    p.name                               AS product_name,
	    COALESCE(SUM(t.quantity), 0)         AS units_sold,
	    COALESCE(SUM(t.total_amount), 0)     AS revenue
	FROM stock_transactions t
	JOIN products p ON p.id = t.product_id` + where + `
	  AND t.transaction_type = 'DECREASE'
	GROUP BY p.id, p.sku, p.name
	ORDER BY revenue DESC, p.id ASC` + fmt.Sprintf(`
	LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.ProductName,
			&row.UnitsSold,
			&row.Revenue,
		); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
