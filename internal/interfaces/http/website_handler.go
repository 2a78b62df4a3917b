package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/website"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// WebsiteHandler secciones de la web pública de la cuenta (protegido).
type WebsiteHandler struct {
	store *website.Store
}

// NewWebsiteHandler construye el handler.
func NewWebsiteHandler(store *website.Store) *WebsiteHandler {
	return &WebsiteHandler{store: store}
}

// GetAll godoc
// @Summary      Todas las secciones válidas
// @Tags         website
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResult
// @Router       /api/website-config [get]
func (h *WebsiteHandler) GetAll(c *fiber.Ctx) error {
	return ok(c, h.store.GetAll(c.UserContext()))
}

// Get godoc
// @Summary      Sección de la web
// @Description  Sin datos o con datos que no cumplen el esquema responde success sin data.
// @Tags         website
// @Security     Bearer
// @Produce      json
// @Param        section  path  string  true  "hero | about | footer | seo | properties | testimonials | head | contact"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/website-config/{section} [get]
func (h *WebsiteHandler) Get(c *fiber.Ctx) error {
	return ok(c, h.store.Get(c.UserContext(), entity.WebsiteSection(c.Params("section"))))
}

// Save godoc
// @Summary      Guardar sección de la web
// @Description  Reemplaza la sección; el cuerpo debe cumplir su esquema.
// @Tags         website
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        section  path  string  true  "sección"
// @Success      200  {object}  dto.ActionResult
// @Failure      400  {object}  dto.ActionResult
// @Router       /api/website-config/{section} [put]
func (h *WebsiteHandler) Save(c *fiber.Ctx) error {
	out, err := h.store.Save(c.UserContext(), entity.WebsiteSection(c.Params("section")), c.Body())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}
