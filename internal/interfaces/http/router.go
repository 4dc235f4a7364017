package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-backoffice/internal/application/auth"
	"github.com/jhoicas/pos-backoffice/internal/application/ledger"
	"github.com/jhoicas/pos-backoffice/internal/application/report"
	"github.com/jhoicas/pos-backoffice/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	StoreUC       *usecase.StoreUseCase
	RecordTx      *ledger.RecordTransactionUseCase
	LedgerQueries *ledger.LedgerQueryUseCase
	ReportUC      *report.ReportUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Las mutaciones del registro de
// identificadores (products/stores) requieren rol ADMIN; registrar y consultar
// transacciones y reportes basta con estar autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	admin := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), admin, authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (mutaciones = ADMIN)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", admin, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	// Stores (mutaciones = ADMIN)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", admin, storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", admin, storeHandler.Update)
	stores.Delete("/:id", admin, storeHandler.Delete)

	// Transacciones de stock
	ledgerHandler := NewLedgerHandler(deps.RecordTx, deps.LedgerQueries)
	transactions := protected.Group("/transactions")
	transactions.Post("/", ledgerHandler.Record)
	transactions.Get("/", ledgerHandler.List)
	products.Get("/:id/reconcile", ledgerHandler.Reconcile)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/sales-by-store", reportHandler.SalesByStore)
	reports.Get("/top-products", reportHandler.TopProducts)
}
