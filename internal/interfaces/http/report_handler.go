package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/report"
)

// ReportHandler expone los reportes de solo lectura sobre el ledger.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func parseReportRequest(c *fiber.Ctx) dto.ReportRequest {
	return dto.ReportRequest{
		StoreID: c.Query("store_id"),
		From:    c.Query("from"),
		To:      c.Query("to"),
	}
}

// Summary godoc
// @Summary      Resumen de transacciones (conteos y montos por tipo)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtro por tienda"
// @Param        from      query  string  false  "Desde (RFC 3339 o 2006-01-02, UTC)"
// @Param        to        query  string  false  "Hasta (inclusive)"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summarize(c.UserContext(), parseReportRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesByStore godoc
// @Summary      Ventas agregadas por tienda (solo DECREASE)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtro por tienda"
// @Param        from      query  string  false  "Desde"
// @Param        to        query  string  false  "Hasta (inclusive)"
// @Success      200  {array}  dto.StoreSalesDTO
// @Router       /api/reports/sales-by-store [get]
func (h *ReportHandler) SalesByStore(c *fiber.Ctx) error {
	out, err := h.uc.SalesByStore(c.UserContext(), parseReportRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos con mayor ingreso por ventas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtro por tienda"
// @Param        from      query  string  false  "Desde"
// @Param        to        query  string  false  "Hasta (inclusive)"
// @Param        limit     query  int     false  "Cantidad de productos"  default(5)
// @Success      200  {array}  dto.TopProductDTO
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	out, err := h.uc.TopProducts(c.UserContext(), parseReportRequest(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
