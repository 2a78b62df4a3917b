package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/notaencargo"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
)

// NotaEncargoHandler genera la nota de encargo en PDF (protegido).
// A diferencia del resto responde con códigos reales y {error, details}.
type NotaEncargoHandler struct {
	uc *notaencargo.UseCase
}

// NewNotaEncargoHandler construye el handler.
func NewNotaEncargoHandler(uc *notaencargo.UseCase) *NotaEncargoHandler {
	return &NotaEncargoHandler{uc: uc}
}

// GeneratePDF godoc
// @Summary      Generar nota de encargo
// @Tags         nota-encargo
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.NotaEncargoRequest  true  "Datos de la nota"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/nota-encargo/generate-pdf [post]
func (h *NotaEncargoHandler) GeneratePDF(c *fiber.Ctx) error {
	var in dto.NotaEncargoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
	}
	pdf, filename, err := h.uc.Generate(c.UserContext(), in.Data)
	if err != nil {
		if domain.KindOf(err) == domain.KindValidation {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid data", Details: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to generate PDF", Details: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(pdf)
}
