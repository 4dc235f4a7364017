package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/ledger"
	"github.com/jhoicas/pos-backoffice/pkg/validator"
)

// LedgerHandler maneja el registro y consulta de transacciones de stock.
type LedgerHandler struct {
	record  *ledger.RecordTransactionUseCase
	queries *ledger.LedgerQueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(record *ledger.RecordTransactionUseCase, queries *ledger.LedgerQueryUseCase) *LedgerHandler {
	return &LedgerHandler{record: record, queries: queries}
}

// Record godoc
// @Summary      Registrar transacción de stock (INCREASE o DECREASE)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "Transacción"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *LedgerHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return respondFieldErrors(c, errs)
	}
	entry, err := h.record.Record(c.UserContext(), ledger.RecordTransactionInput{
		Type:      in.Type,
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Notes:     in.Notes,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ledger.ToLedgerEntryResponse(entry))
}

// List godoc
// @Summary      Listar transacciones (más reciente primero)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtro por producto"
// @Param        store_id    query  string  false  "Filtro por tienda"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.LedgerListResponse
// @Router       /api/transactions [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	var in dto.LedgerListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválido"})
	}
	out, err := h.queries.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reproducir el historial de un producto y compararlo con su stock
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reconcile [get]
func (h *LedgerHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.queries.Reconcile(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
