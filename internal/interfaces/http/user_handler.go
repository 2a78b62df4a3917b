package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
)

// UserHandler usuarios y roles de la cuenta (protegido, solo administradores).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de usuario con rol
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos y rol"
// @Success      201   {object}  dto.ActionResult{data=dto.UserResponse}
// @Failure      409   {object}  dto.ActionResult
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateUserWithRole(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

// List godoc
// @Summary      Usuarios activos de la cuenta
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "página"
// @Param        limit  query  int  false  "tamaño de página"
// @Success      200  {object}  dto.ActionResult{data=[]dto.UserResponse}
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.ActionResult{data=dto.UserResponse}
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	return getOne(c, h.uc.Get)
}

// Update godoc
// @Summary      Actualizar datos del usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ActionResult{data=dto.UserResponse}
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// UpdateRole godoc
// @Summary      Cambiar rol del usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.UpdateRoleRequest  true  "Nuevo rol"
// @Success      200   {object}  dto.ActionResult{data=dto.UserResponse}
// @Failure      409   {object}  dto.ActionResult
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateUserRole(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// Deactivate godoc
// @Summary      Desactivar usuario
// @Tags         users
// @Security     Bearer
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.ActionResult
// @Failure      409  {object}  dto.ActionResult
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	return deleteOne(c, h.uc.Deactivate)
}

// ListRoles godoc
// @Summary      Roles de la cuenta con sus permisos
// @Tags         account
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResult{data=[]dto.AccountRoleResponse}
// @Router       /api/account/roles [get]
func (h *UserHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.uc.ListAccountRoles(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// InitRoles godoc
// @Summary      Crear los roles por defecto de la cuenta
// @Description  Idempotente.
// @Tags         account
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResult{data=[]dto.AccountRoleResponse}
// @Router       /api/account/roles/init [post]
func (h *UserHandler) InitRoles(c *fiber.Ctx) error {
	out, err := h.uc.InitializeAccountRoles(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// UpdateRolePermissions godoc
// @Summary      Cambiar permisos de un rol
// @Tags         account
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        role  path  string                        true  "agent | account_admin"
// @Param        body  body  dto.UpdatePermissionsRequest  true  "Permisos"
// @Success      200   {object}  dto.ActionResult{data=dto.AccountRoleResponse}
// @Router       /api/account/roles/{role}/permissions [put]
func (h *UserHandler) UpdateRolePermissions(c *fiber.Ctx) error {
	var in dto.UpdatePermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateRolePermissions(c.UserContext(), c.Params("role"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}
