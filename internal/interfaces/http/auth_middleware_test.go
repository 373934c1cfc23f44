package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/punchlist-api/internal/domain"
	apphttp "github.com/jhoicas/punchlist-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/punchlist-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "punchlist-test"
	testExpMin    = 60
)

// jwtAuthenticator valida con pkg/jwt y rechaza los jti revocados.
type jwtAuthenticator struct{ revoked map[string]bool }

func (a jwtAuthenticator) Authenticate(_ context.Context, token string) (pkgjwt.Session, error) {
	s, err := pkgjwt.Parse(testJWTSecret, token)
	if err != nil || a.revoked[s.TokenID] {
		return pkgjwt.Session{}, domain.ErrUnauthorized
	}
	return s, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(authn apphttp.Authenticator, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(authn),
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

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) (string, pkgjwt.Session) {
	t.Helper()
	tok, s, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Session{
		UserID: testUserID, CompanyID: testCompanyID, Role: role, Email: role + "@example.com",
	})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok, s
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
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

func TestRequireRole_GCAccedeRutaGC(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "gc")
	header, _ := tokenForRole(t, "gc")
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "gc", body["role"])
}

func TestRequireRole_SubAccedeRutaCompartida(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "gc", "sub")
	header, _ := tokenForRole(t, "sub")
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_SubBloqueadoEnRutaGC(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "gc")
	header, _ := tokenForRole(t, "sub")
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "gc")
	header, _ := tokenForRole(t, "")
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_RechazaPeticionesSinTokenValido(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "gc")

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin esquema Bearer", "Token abc", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, tt.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.code)
		})
	}
}

func TestAuthMiddleware_TokenRevocado(t *testing.T) {
	header, s := tokenForRole(t, "gc")
	app := buildTestApp(jwtAuthenticator{revoked: map[string]bool{s.TokenID: true}}, "gc")

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(jwtAuthenticator{}), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
			"email":      apphttp.GetSession(c).Email,
		})
	})

	header, _ := tokenForRole(t, "gc")
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", header)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "gc", body["role"])
	assert.Equal(t, "gc@example.com", body["email"])
}
