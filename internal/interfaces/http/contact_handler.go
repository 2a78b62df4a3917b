package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// ContactHandler contactos y sus notas privadas (protegido).
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Contact  true  "Datos del contacto"
// @Success      201   {object}  dto.ActionResult{data=entity.Contact}
// @Failure      400   {object}  dto.ActionResult
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in entity.Contact
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), &in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

// List godoc
// @Summary      Listar o buscar contactos
// @Description  Con q busca sin acentos por nombre, email o teléfono; sin q pagina.
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  false  "texto a buscar"
// @Param        page   query  int     false  "página"
// @Param        limit  query  int     false  "tamaño de página"
// @Success      200    {object}  dto.ActionResult{data=dto.PageResponse}
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		out, err := h.uc.Search(c.UserContext(), q, c.QueryInt("limit"))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, out)
	}
	out, err := h.uc.List(c.UserContext(), pageFrom(c), nil)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener contacto
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del contacto"
// @Success      200  {object}  dto.ActionResult{data=entity.Contact}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/contacts/{id} [get]
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// Update godoc
// @Summary      Actualizar contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID del contacto"
// @Param        body  body  dto.ContactPatch  true  "Campos a cambiar"
// @Success      200   {object}  dto.ActionResult{data=entity.Contact}
// @Failure      400   {object}  dto.ActionResult
// @Failure      404   {object}  dto.ActionResult
// @Router       /api/contacts/{id} [patch]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.ContactPatch
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Baja de contacto
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del contacto"
// @Success      200  {object}  dto.ActionResult
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}

// AddNote godoc
// @Summary      Añadir nota privada a un contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del contacto"
// @Param        body  body  dto.UserCommentRequest  true  "Contenido"
// @Success      201   {object}  dto.ActionResult{data=entity.UserComment}
// @Router       /api/contacts/{id}/notes [post]
func (h *ContactHandler) AddNote(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.UserCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.AddNote(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

// ListNotes godoc
// @Summary      Notas de un contacto
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del contacto"
// @Success      200  {object}  dto.ActionResult{data=[]entity.UserComment}
// @Router       /api/contacts/{id}/notes [get]
func (h *ContactHandler) ListNotes(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	out, err := h.uc.ListNotes(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// DeleteNote godoc
// @Summary      Borrar nota propia
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id      path  int  true  "ID del contacto"
// @Param        noteId  path  int  true  "ID de la nota"
// @Success      200     {object}  dto.ActionResult
// @Failure      403     {object}  dto.ActionResult
// @Router       /api/contacts/{id}/notes/{noteId} [delete]
func (h *ContactHandler) DeleteNote(c *fiber.Ctx) error {
	noteID, valid := paramID(c, "noteId")
	if !valid {
		return badRequest(c, "id de nota inválido")
	}
	if err := h.uc.DeleteNote(c.UserContext(), noteID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"id": noteID})
}
