package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// ProspectHandler captaciones de inmuebles (protegido).
type ProspectHandler struct {
	uc *usecase.ProspectUseCase
}

// NewProspectHandler construye el handler.
func NewProspectHandler(uc *usecase.ProspectUseCase) *ProspectHandler {
	return &ProspectHandler{uc: uc}
}

// Create godoc
// @Summary      Crear captación
// @Tags         prospects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Prospect  true  "Datos de la captación"
// @Success      201   {object}  dto.ActionResult{data=entity.Prospect}
// @Router       /api/prospects [post]
func (h *ProspectHandler) Create(c *fiber.Ctx) error {
	var in entity.Prospect
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
// @Summary      Listar captaciones
// @Tags         prospects
// @Security     Bearer
// @Produce      json
// @Param        contact_id  query  int     false  "propietario"
// @Param        status      query  string  false  "estado"
// @Param        page        query  int     false  "página"
// @Param        limit       query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ActionResult{data=dto.PageResponse}
// @Router       /api/prospects [get]
func (h *ProspectHandler) List(c *fiber.Ctx) error {
	if contactID := queryID(c, "contact_id"); contactID > 0 {
		out, err := h.uc.ListByContact(c.UserContext(), contactID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, out)
	}
	filters := map[string]any{}
	if s := c.Query("status"); s != "" {
		filters["status"] = s
	}
	out, err := h.uc.List(c.UserContext(), pageFrom(c), filters)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener captación
// @Tags         prospects
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la captación"
// @Success      200  {object}  dto.ActionResult{data=entity.Prospect}
// @Router       /api/prospects/{id} [get]
func (h *ProspectHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// Update godoc
// @Summary      Actualizar captación
// @Tags         prospects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID de la captación"
// @Param        body  body  dto.ProspectPatch  true  "Campos a cambiar"
// @Success      200   {object}  dto.ActionResult{data=entity.Prospect}
// @Router       /api/prospects/{id} [patch]
func (h *ProspectHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.ProspectPatch
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
// @Summary      Baja de captación
// @Tags         prospects
// @Security     Bearer
// @Param        id   path  int  true  "ID de la captación"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/prospects/{id} [delete]
func (h *ProspectHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}

// LeadHandler leads compradores (protegido).
type LeadHandler struct {
	uc *usecase.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// Create godoc
// @Summary      Alta manual de lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.ListingContact  true  "Contacto y anuncio"
// @Success      201   {object}  dto.ActionResult{data=entity.ListingContact}
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in entity.ListingContact
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
// @Summary      Listar leads
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        listing_id  query  int     false  "anuncio"
// @Param        contact_id  query  int     false  "contacto"
// @Param        status      query  string  false  "estado"
// @Param        page        query  int     false  "página"
// @Param        limit       query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ActionResult{data=dto.PageResponse}
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if listingID := queryID(c, "listing_id"); listingID > 0 {
		out, err := h.uc.ListByListing(ctx, listingID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, out)
	}
	if contactID := queryID(c, "contact_id"); contactID > 0 {
		out, err := h.uc.ListByContact(ctx, contactID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, out)
	}
	filters := map[string]any{}
	if s := c.Query("status"); s != "" {
		filters["status"] = s
	}
	out, err := h.uc.List(ctx, pageFrom(c), filters)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// Find godoc
// @Summary      Lead comprador de un contacto
// @Description  Sin listing_id devuelve el primer lead comprador del contacto.
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        contact_id  query  int  true   "contacto"
// @Param        listing_id  query  int  false  "anuncio"
// @Success      200  {object}  dto.ActionResult{data=entity.ListingContact}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/leads/find [get]
func (h *LeadHandler) Find(c *fiber.Ctx) error {
	contactID := queryID(c, "contact_id")
	if contactID == 0 {
		return badRequest(c, "contact_id es requerido")
	}
	var listingID *int64
	if id := queryID(c, "listing_id"); id > 0 {
		listingID = &id
	}
	out, err := h.uc.FindByContactAndListing(c.UserContext(), contactID, listingID)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("lead no encontrado"))
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener lead
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del lead"
// @Success      200  {object}  dto.ActionResult{data=entity.ListingContact}
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del lead"
// @Param        body  body  dto.LeadStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ActionResult{data=entity.ListingContact}
// @Router       /api/leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.LeadStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Baja de lead
// @Tags         leads
// @Security     Bearer
// @Param        id   path  int  true  "ID del lead"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}
