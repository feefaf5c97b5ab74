package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Lotes-api/internal/application/ledger"
	"github.com/jhoicas/Lotes-api/internal/application/report"
	"github.com/jhoicas/Lotes-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *usecase.MasterItemUseCase
	LedgerUC     *ledger.UseCase
	ProjectionUC *ledger.ProjectionUseCase
	ReportUC     *report.UseCase
	ReportPDFUC  *report.PDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de ítems maestros
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)

	// Ledger: entradas, salidas e historial
	ledgerGroup := api.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.ReportUC)
	ledgerGroup.Post("/add", ledgerHandler.Add)
	ledgerGroup.Post("/remove", ledgerHandler.Remove)
	ledgerGroup.Get("/transactions", ledgerHandler.Transactions)

	// Proyección de inventario actual
	inventory := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ProjectionUC)
	inventory.Get("/", inventoryHandler.List)
	inventory.Get("/:itemID", inventoryHandler.GetByItem)

	// Reportes por período y tendencia semanal
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ReportPDFUC)
	reports.Get("/expenses", reportHandler.Expenses)
	reports.Get("/expenses/pdf", reportHandler.ExpensesPDF)
	reports.Get("/trends", reportHandler.Trends)
}
