package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/pkg/jwt"
)

// Locals keys con los datos de la sesión en Fiber.
const (
	LocalSession   = "session"
	LocalUserID    = "user_id"
	LocalAccountID = "account_id"
	LocalRole      = "role"
)

// AuthMiddleware valida el Bearer Token JWT, construye la sesión y la deja en c.Locals
// y en el contexto de usuario que reciben los casos de uso.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "MISSING_TOKEN", Details: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "INVALID_TOKEN", Details: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "MISSING_TOKEN", Details: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "INVALID_TOKEN", Details: "token inválido o expirado"})
		}

		s := &entity.Session{
			User: entity.SessionUser{
				ID:        claims.UserID,
				AccountID: claims.AccountID,
				Email:     claims.Email,
				FirstName: claims.FirstName,
				LastName:  claims.LastName,
				Role:      claims.Role,
			},
			Session: entity.SessionInfo{ID: claims.ID},
		}
		if claims.ExpiresAt != nil {
			s.Session.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Locals(LocalSession, s)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalAccountID, claims.AccountID)
		c.Locals(LocalRole, claims.Role)
		c.SetUserContext(auth.WithSession(c.UserContext(), s))
		return c.Next()
	}
}

// GetUserID devuelve el id del usuario autenticado (0 si no hay sesión).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetAccountID devuelve la cuenta del usuario autenticado (0 si no hay sesión).
func GetAccountID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalAccountID).(int64)
	return v
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}
