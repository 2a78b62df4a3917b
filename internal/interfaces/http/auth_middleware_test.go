package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	apphttp "github.com/jhoicas/crm-inmobiliario/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/crm-inmobiliario/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = int64(41)
	testAccountID = int64(7)
	testIssuer    = "crm-inmobiliario-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar la sesión
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, role string, expMin int) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Subject{
		UserID:    testUserID,
		AccountID: testAccountID,
		Email:     "marta@sol.es",
		FirstName: "Marta",
		Role:      role,
	}, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// tokenForRole cabecera Authorization con un JWT del rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return "Bearer " + tokenFor(t, role, testExpMin)
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAccountAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAccountAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAccountAdmin, body["role"])
}

func TestRequireRole_AgenteAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp(entity.RoleAccountAdmin, entity.RoleAgent)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAgent))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_SuperAdminPasaSiempre(t *testing.T) {
	app := buildTestApp(entity.RoleAccountAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_AgenteBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAccountAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAgent))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAccountAdmin)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, "", testExpMin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_RechazaPeticiones(t *testing.T) {
	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"sin cabecera", "", "MISSING_TOKEN"},
		{"sin esquema Bearer", tokenFor(t, entity.RoleAgent, testExpMin), "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"token caducado", "Bearer " + tokenFor(t, entity.RoleAgent, -1), "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(entity.RoleAgent), tt.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.code)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware: la sesión llega a los casos de uso por el contexto
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SesionEnContexto(t *testing.T) {
	resolver := auth.NewResolver(nil, zerolog.Nop())
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		u, err := resolver.CurrentUser(c.UserContext())
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{
			"user_id":    u.ID,
			"account_id": u.AccountID,
			"email":      u.Email,
			"local_user": apphttp.GetUserID(c),
			"local_acc":  apphttp.GetAccountID(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAgent))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, testUserID, body["user_id"])
	assert.EqualValues(t, testAccountID, body["account_id"])
	assert.Equal(t, "marta@sol.es", body["email"])
	assert.EqualValues(t, testUserID, body["local_user"])
	assert.EqualValues(t, testAccountID, body["local_acc"])
}
