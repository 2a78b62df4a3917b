package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// AppointmentHandler citas y visitas (protegido).
type AppointmentHandler struct {
	uc *usecase.AppointmentUseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *usecase.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cita
// @Description  Si la cita es de un contacto sobre un anuncio se busca o crea su lead comprador.
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Appointment  true  "Datos de la cita"
// @Success      201   {object}  dto.ActionResult{data=entity.Appointment}
// @Failure      400   {object}  dto.ActionResult
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var in entity.Appointment
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
// @Summary      Citas de un rango, de un contacto o de un agente
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  false  "inicio RFC3339"
// @Param        to          query  string  false  "fin RFC3339"
// @Param        user_id     query  int     false  "agente"
// @Param        contact_id  query  int     false  "contacto"
// @Success      200  {object}  dto.ActionResult{data=[]entity.Appointment}
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if contactID := queryID(c, "contact_id"); contactID > 0 {
		out, err := h.uc.ListByContact(ctx, contactID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, out)
	}
	from, to := c.Query("from"), c.Query("to")
	if from == "" && to == "" {
		userID := queryID(c, "user_id")
		if userID == 0 {
			userID = GetUserID(c)
		}
		out, err := h.uc.ListByUser(ctx, userID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, out)
	}
	r := dto.AppointmentRange{UserID: queryID(c, "user_id")}
	var err error
	if r.From, err = time.Parse(time.RFC3339, from); err != nil {
		return badRequest(c, "from debe ser RFC3339")
	}
	if r.To, err = time.Parse(time.RFC3339, to); err != nil {
		return badRequest(c, "to debe ser RFC3339")
	}
	out, err := h.uc.ListByRange(ctx, r)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener cita
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la cita"
// @Success      200  {object}  dto.ActionResult{data=entity.Appointment}
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// Update godoc
// @Summary      Reprogramar o editar cita
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID de la cita"
// @Param        body  body  dto.AppointmentPatch  true  "Campos a cambiar"
// @Success      200   {object}  dto.ActionResult{data=entity.Appointment}
// @Router       /api/appointments/{id} [patch]
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.AppointmentPatch
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la cita
// @Description  Mueve el lead asociado según la tabla de transiciones.
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID de la cita"
// @Param        body  body  dto.AppointmentStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ActionResult{data=entity.Appointment}
// @Router       /api/appointments/{id}/status [patch]
func (h *AppointmentHandler) ChangeStatus(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.AppointmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// RecordVisitOutcome godoc
// @Summary      Registrar resultado de la visita
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la cita"
// @Param        body  body  dto.VisitOutcomeRequest  true  "Resultado y notas"
// @Success      200   {object}  dto.ActionResult{data=entity.Appointment}
// @Router       /api/appointments/{id}/visit-outcome [post]
func (h *AppointmentHandler) RecordVisitOutcome(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.VisitOutcomeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.RecordVisitOutcome(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Baja de cita
// @Tags         appointments
// @Security     Bearer
// @Param        id   path  int  true  "ID de la cita"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}
