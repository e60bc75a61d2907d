package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/smartuniit/taskflow-api/internal/application/dto"
	"github.com/smartuniit/taskflow-api/internal/application/quoting"
	"github.com/smartuniit/taskflow-api/internal/domain"
)

// QuotationHandler maneja las peticiones HTTP de cotizaciones.
type QuotationHandler struct {
	uc     *quoting.QuotationUseCase
	export *quoting.ExportUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *quoting.QuotationUseCase, export *quoting.ExportUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc, export: export}
}

// Create crea una cotización con sus líneas y totales calculados.
// POST /api/quotations
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	quotation, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return commercialError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quotation)
}

// GetByID obtiene la cotización con detalle completo.
// GET /api/quotations/:id
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	quotation, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cotización no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(quotation)
}

// List GET /api/quotations?limit=20&offset=0
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Recalculate recomputa totales de un borrador en edición, sin persistir.
// POST /api/quotations/recalculate
func (h *QuotationHandler) Recalculate(c *fiber.Ctx) error {
	var in dto.RecalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Recalculate(c.Context(), in)
	if err != nil {
		return commercialError(c, err)
	}
	return c.JSON(result)
}

// UpdateStatus transiciona el estado del documento.
// PATCH /api/quotations/:id/status
func (h *QuotationHandler) UpdateStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cotización no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF exporta la cotización como PDF descargable.
// GET /api/quotations/:id/pdf
func (h *QuotationHandler) DownloadPDF(c *fiber.Ctx) error {
	artifact, err := h.export.DownloadQuotationPDF(c.Context(), c.Params("id"))
	if err != nil {
		return exportError(c, err, "cotización no encontrada")
	}
	return sendArtifact(c, artifact)
}

// ── helpers compartidos con propuestas ────────────────────────────────────────

// commercialError mapea los errores del pipeline de cálculo a HTTP 400/404.
func commercialError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidLineItem):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LINE_ITEM", Message: "cantidad y precio unitario deben ser no negativos"})
	case errors.Is(err, domain.ErrInvalidDiscount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DISCOUNT", Message: "descuento inválido (tipo o rango)"})
	case errors.Is(err, domain.ErrInvalidVATRate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_VAT_RATE", Message: "la tasa de IVA debe estar en [0,100]"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id, title y currency (3 letras) son requeridos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// exportError mapea los errores del pipeline de exportación.
func exportError(c *fiber.Ctx, err error, notFoundMsg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	}
	if errors.Is(err, domain.ErrExportFailed) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: "no se pudo generar el PDF"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// sendArtifact responde los bytes del PDF como descarga con nombre determinista.
func sendArtifact(c *fiber.Ctx, artifact *quoting.Artifact) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
	return c.Send(artifact.Bytes)
}
