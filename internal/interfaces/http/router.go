package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smartuniit/taskflow-api/internal/application/quoting"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC  *quoting.CustomerUseCase
	QuotationUC *quoting.QuotationUseCase
	ProposalUC  *quoting.ProposalUseCase
	ExportUC    *quoting.ExportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Quotations
	quotations := api.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC, deps.ExportUC)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	// recalculate va antes que :id para que el router no lo capture como ID.
	quotations.Post("/recalculate", quotationHandler.Recalculate)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Patch("/:id/status", quotationHandler.UpdateStatus)
	quotations.Get("/:id/pdf", quotationHandler.DownloadPDF)

	// Proposals
	proposals := api.Group("/proposals")
	proposalHandler := NewProposalHandler(deps.ProposalUC, deps.ExportUC)
	proposals.Post("/", proposalHandler.Create)
	proposals.Get("/", proposalHandler.List)
	proposals.Get("/:id", proposalHandler.GetByID)
	proposals.Patch("/:id/status", proposalHandler.UpdateStatus)
	proposals.Get("/:id/pdf", proposalHandler.DownloadPDF)
}
