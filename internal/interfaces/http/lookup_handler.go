package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
)

// LookupHandler consultas a Catastro y geocodificación (protegido).
type LookupHandler struct {
	uc *usecase.LookupUseCase
}

// NewLookupHandler construye el handler.
func NewLookupHandler(uc *usecase.LookupUseCase) *LookupHandler {
	return &LookupHandler{uc: uc}
}

// Cadastral godoc
// @Summary      Datos catastrales por referencia
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "referencia catastral (20 caracteres)"
// @Success      200  {object}  dto.ActionResult{data=dto.CadastralData}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/lookup/catastro/{ref} [get]
func (h *LookupHandler) Cadastral(c *fiber.Ctx) error {
	out, err := h.uc.Cadastral(c.UserContext(), c.Params("ref"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// Geocode godoc
// @Summary      Geocodificar una dirección
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        address  query  string  true  "dirección postal"
// @Success      200  {object}  dto.ActionResult{data=dto.GeocodeResult}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/lookup/geocode [get]
func (h *LookupHandler) Geocode(c *fiber.Ctx) error {
	address := c.Query("address")
	if address == "" {
		return badRequest(c, "address es requerido")
	}
	out, err := h.uc.Geocode(c.UserContext(), address)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// EnrichProperty godoc
// @Summary      Completar un inmueble con Catastro y geocodificación
// @Description  Consulta ambas fuentes en paralelo; basta con que una responda.
// @Tags         properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnrichPropertyRequest  true  "referencia y/o dirección"
// @Success      200   {object}  dto.ActionResult{data=dto.EnrichPropertyResponse}
// @Failure      404   {object}  dto.ActionResult
// @Router       /api/properties/enrich [post]
func (h *LookupHandler) EnrichProperty(c *fiber.Ctx) error {
	var in dto.EnrichPropertyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.EnrichProperty(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}
