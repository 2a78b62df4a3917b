package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/crm-inmobiliario/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del panel de inicio.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen comercial de la cuenta.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (anuncios por estado, leads por estado, citas de hoy,
// tareas y operaciones abiertas, honorarios previstos, date_label).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, summary)
}
