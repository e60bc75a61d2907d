package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/smartuniit/taskflow-api/internal/application/dto"
	"github.com/smartuniit/taskflow-api/internal/application/quoting"
	"github.com/smartuniit/taskflow-api/internal/domain"
)

// ProposalHandler maneja las peticiones HTTP de propuestas comerciales.
type ProposalHandler struct {
	uc     *quoting.ProposalUseCase
	export *quoting.ExportUseCase
}

// NewProposalHandler construye el handler.
func NewProposalHandler(uc *quoting.ProposalUseCase, export *quoting.ExportUseCase) *ProposalHandler {
	return &ProposalHandler{uc: uc, export: export}
}

// Create crea una propuesta con líneas, condiciones y tareas.
// POST /api/proposals
func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	proposal, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return commercialError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(proposal)
}

// GetByID obtiene la propuesta con detalle completo.
// GET /api/proposals/:id
func (h *ProposalHandler) GetByID(c *fiber.Ctx) error {
	proposal, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "propuesta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(proposal)
}

// List GET /api/proposals?limit=20&offset=0
func (h *ProposalHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// UpdateStatus transiciona el estado del documento.
// PATCH /api/proposals/:id/status
func (h *ProposalHandler) UpdateStatus(c *fiber.Ctx) error {
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
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "propuesta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF exporta la propuesta como PDF descargable.
// GET /api/proposals/:id/pdf
func (h *ProposalHandler) DownloadPDF(c *fiber.Ctx) error {
	artifact, err := h.export.DownloadProposalPDF(c.Context(), c.Params("id"))
	if err != nil {
		return exportError(c, err, "propuesta no encontrada")
	}
	return sendArtifact(c, artifact)
}
