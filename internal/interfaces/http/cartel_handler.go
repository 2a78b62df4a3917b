package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
)

// CartelHandler configuraciones de carteles de escaparate (protegido).
type CartelHandler struct {
	uc *usecase.CartelUseCase
}

// NewCartelHandler construye el handler.
func NewCartelHandler(uc *usecase.CartelUseCase) *CartelHandler {
	return &CartelHandler{uc: uc}
}

// Create godoc
// @Summary      Crear configuración de cartel
// @Tags         carteles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartelRequest  true  "Nombre, ajustes y si es predeterminada"
// @Success      201   {object}  dto.ActionResult{data=dto.CartelResponse}
// @Failure      400   {object}  dto.ActionResult
// @Router       /api/cartel-configurations [post]
func (h *CartelHandler) Create(c *fiber.Ctx) error {
	var in dto.CartelRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

// List godoc
// @Summary      Configuraciones de cartel de la cuenta
// @Tags         carteles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResult{data=[]dto.CartelResponse}
// @Router       /api/cartel-configurations [get]
func (h *CartelHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetDefault godoc
// @Summary      Configuración predeterminada
// @Tags         carteles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResult{data=dto.CartelResponse}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/cartel-configurations/default [get]
func (h *CartelHandler) GetDefault(c *fiber.Ctx) error {
	out, err := h.uc.GetDefault(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener configuración de cartel
// @Tags         carteles
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la configuración"
// @Success      200  {object}  dto.ActionResult{data=dto.CartelResponse}
// @Router       /api/cartel-configurations/{id} [get]
func (h *CartelHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// Update godoc
// @Summary      Reemplazar configuración de cartel
// @Tags         carteles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID de la configuración"
// @Param        body  body  dto.CartelRequest  true  "Nombre y ajustes"
// @Success      200   {object}  dto.ActionResult{data=dto.CartelResponse}
// @Router       /api/cartel-configurations/{id} [put]
func (h *CartelHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.CartelRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// SetDefault godoc
// @Summary      Marcar como predeterminada
// @Description  Desmarca la anterior en la misma transacción.
// @Tags         carteles
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la configuración"
// @Success      200  {object}  dto.ActionResult{data=dto.CartelResponse}
// @Router       /api/cartel-configurations/{id}/default [put]
func (h *CartelHandler) SetDefault(c *fiber.Ctx) error {
	return getOne(c, h.uc.SetDefault)
}

// Delete godoc
// @Summary      Borrar configuración de cartel
// @Tags         carteles
// @Security     Bearer
// @Param        id   path  int  true  "ID de la configuración"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/cartel-configurations/{id} [delete]
func (h *CartelHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}
