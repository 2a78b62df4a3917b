package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// linkFrom lee ?link=<tipo>&link_id=<id>. ok=false si no se pidió filtrar por vínculo.
func linkFrom(c *fiber.Ctx) (entity.LinkKind, int64, bool) {
	kind := c.Query("link")
	if kind == "" {
		return "", 0, false
	}
	return entity.LinkKind(kind), queryID(c, "link_id"), true
}

// ── Tareas ──

// TaskHandler tareas de los agentes (protegido).
type TaskHandler struct {
	uc *usecase.TaskUseCase
}

// NewTaskHandler construye el handler.
func NewTaskHandler(uc *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Task  true  "Datos de la tarea"
// @Success      201   {object}  dto.ActionResult{data=entity.Task}
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in entity.Task
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
// @Summary      Tareas abiertas de un usuario o de una entidad
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        link        query  string  false  "listing | contact | deal | appointment | prospect"
// @Param        link_id     query  int     false  "id de la entidad"
// @Param        user_id     query  int     false  "asignado (por defecto el usuario actual)"
// @Param        due_before  query  string  false  "vencimiento anterior a (RFC3339)"
// @Success      200  {object}  dto.ActionResult{data=[]entity.Task}
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if kind, id, linked := linkFrom(c); linked {
		out, err := h.uc.ListByLink(ctx, kind, id)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, out)
	}
	userID := queryID(c, "user_id")
	if userID == 0 {
		userID = GetUserID(c)
	}
	var dueBefore *time.Time
	if s := c.Query("due_before"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return badRequest(c, "due_before debe ser RFC3339")
		}
		dueBefore = &t
	}
	out, err := h.uc.ListByAssignee(ctx, userID, dueBefore)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tarea"
// @Success      200  {object}  dto.ActionResult{data=entity.Task}
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// Update godoc
// @Summary      Actualizar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "ID de la tarea"
// @Param        body  body  dto.TaskPatch  true  "Campos a cambiar"
// @Success      200   {object}  dto.ActionResult{data=entity.Task}
// @Router       /api/tasks/{id} [patch]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.TaskPatch
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// Complete godoc
// @Summary      Completar tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tarea"
// @Success      200  {object}  dto.ActionResult{data=entity.Task}
// @Router       /api/tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	return getOne(c, h.uc.Complete)
}

// Delete godoc
// @Summary      Baja de tarea
// @Tags         tasks
// @Security     Bearer
// @Param        id   path  int  true  "ID de la tarea"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}

// ── Documentos ──

// DocumentHandler documentos subidos (protegido).
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func formID(c *fiber.Ctx, key string) *int64 {
	id, err := strconv.ParseInt(c.FormValue(key), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// Upload godoc
// @Summary      Subir documento
// @Tags         documents
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file            formData  file    true   "Fichero"
// @Param        document_type   formData  string  false  "tipo (contrato, nota_encargo, ...)"
// @Param        listing_id      formData  int     false  "anuncio"
// @Param        contact_id      formData  int     false  "contacto"
// @Param        deal_id         formData  int     false  "operación"
// @Param        appointment_id  formData  int     false  "cita"
// @Param        prospect_id     formData  int     false  "captación"
// @Success      201  {object}  dto.ActionResult{data=entity.Document}
// @Failure      400  {object}  dto.ActionResult
// @Failure      503  {object}  dto.ActionResult
// @Router       /api/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "campo file requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "no se pudo leer el fichero")
	}
	defer f.Close()

	in := dto.DocumentUpload{
		EntityLink: entity.EntityLink{
			ListingID:     formID(c, "listing_id"),
			ContactID:     formID(c, "contact_id"),
			DealID:        formID(c, "deal_id"),
			AppointmentID: formID(c, "appointment_id"),
			ProspectID:    formID(c, "prospect_id"),
		},
		Filename:     fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		DocumentType: c.FormValue("document_type"),
	}
	out, err := h.uc.Upload(c.UserContext(), in, f)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

// List godoc
// @Summary      Documentos de una entidad
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        link     query  string  true  "listing | contact | deal | appointment | prospect"
// @Param        link_id  query  int     true  "id de la entidad"
// @Success      200  {object}  dto.ActionResult{data=[]entity.Document}
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	kind, id, linked := linkFrom(c)
	if !linked {
		return badRequest(c, "link y link_id son requeridos")
	}
	out, err := h.uc.ListByLink(c.UserContext(), kind, id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {object}  dto.ActionResult{data=entity.Document}
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// Delete godoc
// @Summary      Baja de documento
// @Tags         documents
// @Security     Bearer
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}

// ── Operaciones ──

// DealHandler operaciones de venta o alquiler (protegido).
type DealHandler struct {
	uc *usecase.DealUseCase
}

// NewDealHandler construye el handler.
func NewDealHandler(uc *usecase.DealUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create godoc
// @Summary      Crear operación
// @Description  Los honorarios se calculan a partir del importe y el porcentaje.
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Deal  true  "Datos de la operación"
// @Success      201   {object}  dto.ActionResult{data=entity.Deal}
// @Router       /api/deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	var in entity.Deal
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
// @Summary      Operaciones abiertas o de un anuncio
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        listing_id  query  int  false  "anuncio"
// @Success      200  {object}  dto.ActionResult{data=[]entity.Deal}
// @Router       /api/deals [get]
func (h *DealHandler) List(c *fiber.Ctx) error {
	if listingID := queryID(c, "listing_id"); listingID > 0 {
		out, err := h.uc.ListByListing(c.UserContext(), listingID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, out)
	}
	out, err := h.uc.ListOpen(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener operación
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la operación"
// @Success      200  {object}  dto.ActionResult{data=entity.Deal}
// @Router       /api/deals/{id} [get]
func (h *DealHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// Update godoc
// @Summary      Actualizar operación
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "ID de la operación"
// @Param        body  body  dto.DealPatch  true  "Campos a cambiar"
// @Success      200   {object}  dto.ActionResult{data=entity.Deal}
// @Router       /api/deals/{id} [patch]
func (h *DealHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.DealPatch
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
// @Summary      Baja de operación
// @Tags         deals
// @Security     Bearer
// @Param        id   path  int  true  "ID de la operación"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/deals/{id} [delete]
func (h *DealHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}
