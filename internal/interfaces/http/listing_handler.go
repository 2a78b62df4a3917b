package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// ListingHandler anuncios, publicación en portal y borrador de descripción (protegido).
type ListingHandler struct {
	uc *usecase.ListingUseCase
}

// NewListingHandler construye el handler.
func NewListingHandler(uc *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear anuncio
// @Tags         listings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Listing  true  "Datos del anuncio"
// @Success      201   {object}  dto.ActionResult{data=entity.Listing}
// @Failure      400   {object}  dto.ActionResult
// @Router       /api/listings [post]
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var in entity.Listing
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), &in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

func listingFilterFrom(c *fiber.Ctx) (dto.ListingFilter, error) {
	var f dto.ListingFilter
	if err := c.QueryParser(&f); err != nil {
		return f, err
	}
	f.DefaultPage()
	return f, nil
}

// List godoc
// @Summary      Buscar anuncios
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        status        query  string  false  "estado"
// @Param        listing_type  query  string  false  "Sale | Rent"
// @Param        agent_id      query  int     false  "agente"
// @Param        property_id   query  int     false  "inmueble"
// @Param        page          query  int     false  "página"
// @Param        limit         query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ActionResult{data=dto.PageResponse}
// @Router       /api/listings [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	f, err := listingFilterFrom(c)
	if err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	out, err := h.uc.Search(c.UserContext(), f)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// ListDetails godoc
// @Summary      Anuncios con inmueble, imágenes y agente
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        status        query  string  false  "estado"
// @Param        listing_type  query  string  false  "Sale | Rent"
// @Param        page          query  int     false  "página"
// @Param        limit         query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ActionResult{data=[]entity.ListingWithDetails}
// @Router       /api/listings/details [get]
func (h *ListingHandler) ListDetails(c *fiber.Ctx) error {
	f, err := listingFilterFrom(c)
	if err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	out, err := h.uc.ListDetails(c.UserContext(), f)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener anuncio
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del anuncio"
// @Success      200  {object}  dto.ActionResult{data=entity.Listing}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/listings/{id} [get]
func (h *ListingHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// GetDetails godoc
// @Summary      Anuncio con detalles
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del anuncio"
// @Success      200  {object}  dto.ActionResult{data=entity.ListingWithDetails}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/listings/{id}/details [get]
func (h *ListingHandler) GetDetails(c *fiber.Ctx) error {
	return getOne(c, h.uc.GetDetails)
}

// Update godoc
// @Summary      Actualizar anuncio
// @Tags         listings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID del anuncio"
// @Param        body  body  dto.ListingPatch  true  "Campos a cambiar"
// @Success      200   {object}  dto.ActionResult{data=entity.Listing}
// @Router       /api/listings/{id} [patch]
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.ListingPatch
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
// @Summary      Baja de anuncio
// @Tags         listings
// @Security     Bearer
// @Param        id   path  int  true  "ID del anuncio"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/listings/{id} [delete]
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}

// Publish godoc
// @Summary      Publicar anuncio en el portal
// @Description  Un rechazo del portal responde 200 con success=false y el motivo.
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del anuncio"
// @Success      200  {object}  dto.ActionResult{data=dto.PortalPublishResult}
// @Failure      503  {object}  dto.ActionResult
// @Router       /api/listings/{id}/publish [post]
func (h *ListingHandler) Publish(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	res, err := h.uc.Publish(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if !res.Success {
		return c.JSON(dto.ActionResult{Success: false, Data: res, Error: res.Error})
	}
	return ok(c, res)
}

// DraftDescription godoc
// @Summary      Redactar título y descripción del anuncio
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del anuncio"
// @Success      200  {object}  dto.ActionResult{data=dto.ListingDescriptionDTO}
// @Failure      503  {object}  dto.ActionResult
// @Router       /api/listings/{id}/description [post]
func (h *ListingHandler) DraftDescription(c *fiber.Ctx) error {
	return getOne(c, h.uc.DraftDescription)
}
