// Package report contiene los casos de uso de reportes sobre el ledger
// confirmado: resumen de totales, ventas por tienda y productos más vendidos.
// Es estrictamente de lectura; todo resultado se deriva de las entradas.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

const defaultTopProducts = 5 // productos en el reporte de más vendidos

// ReportUseCase deriva agregados deterministas sobre el ledger.
//
// Fuente de datos: ReportRepository (consultas read-only con ORDER BY
// determinista). No accede a las tablas de escritura; delega todo en el
// repositorio, que lee un snapshot transaccionalmente consistente.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// Summarize totales del conjunto filtrado.
// GrossMargin = ventas (DECREASE) − compras (INCREASE).
func (uc *ReportUseCase) Summarize(ctx context.Context, in dto.ReportRequest) (*dto.SummaryResponse, error) {
	filter, err := parseFilter(in)
	if err != nil {
		return nil, err
	}
	s, err := uc.reportRepo.GetSummary(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		TotalTransactions:   s.TotalTransactions,
		TotalIncreaseAmount: s.TotalIncreaseAmount,
		TotalDecreaseAmount: s.TotalDecreaseAmount,
		IncreaseCount:       s.IncreaseCount,
		DecreaseCount:       s.DecreaseCount,
		GrossMargin:         s.TotalDecreaseAmount.Sub(s.TotalIncreaseAmount),
	}, nil
}

// SalesByStore tiendas con al menos una venta en el rango, con conteo y total.
// Orden estable: total_sales DESC, empates por id de tienda ASC.
func (uc *ReportUseCase) SalesByStore(ctx context.Context, in dto.ReportRequest) ([]dto.StoreSalesDTO, error) {
	filter, err := parseFilter(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.GetSalesByStore(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreSalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StoreSalesDTO{
			StoreID:          r.StoreID,
			StoreCode:        r.StoreCode,
			StoreName:        r.StoreName,
			TransactionCount: r.TransactionCount,
			TotalSales:       r.TotalSales,
		})
	}
	return out, nil
}

// TopProducts los `limit` productos con mayor ingreso por ventas (DECREASE).
// Orden: revenue DESC, empates por id de producto ASC. limit <= 0 usa 5.
func (uc *ReportUseCase) TopProducts(ctx context.Context, in dto.ReportRequest, limit int) ([]dto.TopProductDTO, error) {
	filter, err := parseFilter(in)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopProducts
	}
	rows, err := uc.reportRepo.GetTopProducts(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:   r.ProductID,
			SKU:         r.SKU,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue,
		})
	}
	return out, nil
}

// parseFilter interpreta from/to como RFC 3339 o fecha simple, siempre UTC.
// Una fecha simple en `to` cubre el día completo (hasta 23:59:59.999...).
func parseFilter(in dto.ReportRequest) (repository.ReportFilter, error) {
	f := repository.ReportFilter{StoreID: in.StoreID}
	if in.From != "" {
		t, err := parseDate(in.From, false)
		if err != nil {
			return f, fmt.Errorf("%w: from inválido (%s)", domain.ErrInvalidInput, in.From)
		}
		f.From = &t
	}
	if in.To != "" {
		t, err := parseDate(in.To, true)
		if err != nil {
			return f, fmt.Errorf("%w: to inválido (%s)", domain.ErrInvalidInput, in.To)
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	return f, nil
}

func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
