package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// CommentHandler hilos de comentarios del equipo (protegido).
type CommentHandler struct {
	uc *usecase.CommentUseCase
}

// NewCommentHandler construye el handler.
func NewCommentHandler(uc *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

type editCommentRequest struct {
	Content string `json:"content"`
}

// Create godoc
// @Summary      Comentar o responder
// @Description  Solo se responde a comentarios raíz.
// @Tags         comments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommentRequest  true  "Vínculo, padre opcional y contenido"
// @Success      201   {object}  dto.ActionResult{data=entity.Comment}
// @Failure      400   {object}  dto.ActionResult
// @Router       /api/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var in dto.CommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

// Thread godoc
// @Summary      Hilo de comentarios de una entidad
// @Tags         comments
// @Security     Bearer
// @Produce      json
// @Param        link     query  string  true  "listing | contact | deal | appointment | prospect"
// @Param        link_id  query  int     true  "id de la entidad"
// @Success      200  {object}  dto.ActionResult{data=[]entity.Comment}
// @Router       /api/comments [get]
func (h *CommentHandler) Thread(c *fiber.Ctx) error {
	kind, id, linked := linkFrom(c)
	if !linked {
		return badRequest(c, "link y link_id son requeridos")
	}
	out, err := h.uc.Thread(c.UserContext(), kind, id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// ListByListing godoc
// @Summary      Comentarios de un anuncio
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del anuncio"
// @Success      200  {object}  dto.ActionResult{data=[]entity.Comment}
// @Router       /api/listings/{id}/comments [get]
func (h *CommentHandler) ListByListing(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	out, err := h.uc.ListByListing(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// CreateOnListing godoc
// @Summary      Comentar un anuncio
// @Tags         listings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del anuncio"
// @Param        body  body  dto.CommentRequest  true  "Padre opcional y contenido"
// @Success      201   {object}  dto.ActionResult{data=entity.Comment}
// @Router       /api/listings/{id}/comments [post]
func (h *CommentHandler) CreateOnListing(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.CommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	in.EntityLink = entity.EntityLink{ListingID: &id}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

// Edit godoc
// @Summary      Editar comentario propio
// @Tags         comments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del comentario"
// @Param        body  body  editCommentRequest  true  "Nuevo contenido"
// @Success      200   {object}  dto.ActionResult{data=entity.Comment}
// @Failure      403   {object}  dto.ActionResult
// @Router       /api/comments/{id} [patch]
func (h *CommentHandler) Edit(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in editCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Edit(c.UserContext(), id, in.Content)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Borrar comentario
// @Description  El autor o un administrador de la cuenta.
// @Tags         comments
// @Security     Bearer
// @Param        id   path  int  true  "ID del comentario"
// @Success      200  {object}  dto.ActionResult
// @Failure      403  {object}  dto.ActionResult
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}
