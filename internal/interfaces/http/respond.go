package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
)

// statusFor traduce la clase de error de dominio a código HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	}
	switch domain.KindOf(err) {
	case domain.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case domain.KindAccountMismatch:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindTransient:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// fail responde {success:false, error} con el código que corresponde al error.
// Los errores internos no exponen su texto.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.Fail(msg))
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msg))
}

// ok responde {success:true, data}.
func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(dto.OK(data))
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OK(data))
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	return id, err == nil && id > 0
}

// queryID lee un id numérico opcional de la query (0 si falta o no es válido).
func queryID(c *fiber.Ctx, name string) int64 {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func pageFrom(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Page: c.QueryInt("page"), Limit: c.QueryInt("limit")}
	p.DefaultPage()
	return p
}

// getOne resuelve GET /:id con la función de lectura del caso de uso.
func getOne[T any](c *fiber.Ctx, get func(context.Context, int64) (*T, error)) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	out, err := get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// deleteOne resuelve DELETE /:id.
func deleteOne(c *fiber.Ctx, del func(context.Context, int64) error) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "id inválido")
	}
	if err := del(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}
