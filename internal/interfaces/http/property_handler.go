package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// PropertyHandler inmuebles e imágenes (protegido).
type PropertyHandler struct {
	uc *usecase.PropertyUseCase
}

// NewPropertyHandler construye el handler.
func NewPropertyHandler(uc *usecase.PropertyUseCase) *PropertyHandler {
	return &PropertyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear inmueble
// @Tags         properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Property  true  "Datos del inmueble"
// @Success      201   {object}  dto.ActionResult{data=entity.Property}
// @Failure      400   {object}  dto.ActionResult
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var in entity.Property
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
// @Summary      Listar inmuebles
// @Description  Con cadastral_reference devuelve el inmueble de esa referencia.
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        cadastral_reference  query  string  false  "referencia catastral"
// @Param        city                 query  string  false  "municipio"
// @Param        page                 query  int     false  "página"
// @Param        limit                query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ActionResult{data=dto.PageResponse}
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	if ref := c.Query("cadastral_reference"); ref != "" {
		out, err := h.uc.GetByCadastralReference(c.UserContext(), ref)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, out)
	}
	filters := map[string]any{}
	if city := c.Query("city"); city != "" {
		filters["city"] = city
	}
	out, err := h.uc.List(c.UserContext(), pageFrom(c), filters)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener inmueble
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del inmueble"
// @Success      200  {object}  dto.ActionResult{data=entity.Property}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// Update godoc
// @Summary      Actualizar inmueble
// @Tags         properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del inmueble"
// @Param        body  body  dto.PropertyPatch  true  "Campos a cambiar"
// @Success      200   {object}  dto.ActionResult{data=entity.Property}
// @Router       /api/properties/{id} [patch]
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.PropertyPatch
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
// @Summary      Baja de inmueble
// @Tags         properties
// @Security     Bearer
// @Param        id   path  int  true  "ID del inmueble"
// @Success      200  {object}  dto.ActionResult
// @Router       /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Delete)
}

// AddImage godoc
// @Summary      Añadir imagen al inmueble
// @Description  multipart/form-data con campo "file" sube el fichero; JSON registra una URL ya alojada.
// @Tags         properties
// @Security     Bearer
// @Accept       mpfd,json
// @Produce      json
// @Param        id    path      int   true   "ID del inmueble"
// @Param        file  formData  file  false  "Imagen"
// @Success      201   {object}  dto.ActionResult{data=entity.PropertyImage}
// @Failure      400   {object}  dto.ActionResult
// @Failure      503   {object}  dto.ActionResult
// @Router       /api/properties/{id}/images [post]
func (h *PropertyHandler) AddImage(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "no se pudo leer el fichero")
		}
		defer f.Close()
		out, err := h.uc.UploadImage(c.UserContext(), id, fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
		if err != nil {
			return fail(c, err)
		}
		return created(c, out)
	}
	var in dto.PropertyImageRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.AddImage(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

// ListImages godoc
// @Summary      Imágenes del inmueble en su orden
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del inmueble"
// @Success      200  {object}  dto.ActionResult{data=[]entity.PropertyImage}
// @Router       /api/properties/{id}/images [get]
func (h *PropertyHandler) ListImages(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	out, err := h.uc.ListImages(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// ReorderImages godoc
// @Summary      Reordenar imágenes
// @Tags         properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del inmueble"
// @Param        body  body  dto.ReorderImagesRequest  true  "ids en el nuevo orden"
// @Success      200   {object}  dto.ActionResult{data=[]entity.PropertyImage}
// @Router       /api/properties/{id}/images/order [put]
func (h *PropertyHandler) ReorderImages(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.ReorderImagesRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.ReorderImages(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// DeleteImage godoc
// @Summary      Borrar imagen
// @Tags         properties
// @Security     Bearer
// @Param        id       path  int  true  "ID del inmueble"
// @Param        imageId  path  int  true  "ID de la imagen"
// @Success      200      {object}  dto.ActionResult
// @Router       /api/properties/{id}/images/{imageId} [delete]
func (h *PropertyHandler) DeleteImage(c *fiber.Ctx) error {
	imageID, valid := paramID(c, "imageId")
	if !valid {
		return badRequest(c, "id de imagen inválido")
	}
	if err := h.uc.DeleteImage(c.UserContext(), imageID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"id": imageID})
}
