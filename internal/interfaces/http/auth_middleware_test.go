package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/sigep-gc/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/sigep-gc/pkg/jwt"
)

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testCookieName = "token"
	testIssuer     = "sigep-gc-test"
	testExpMin     = 60
)

// buildTestApp app mínima con AuthMiddleware + RequireRole y un handler que
// devuelve la identidad cargada en locals.
func buildTestApp(allowedRoles ...int) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testCookieName),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":      apphttp.GetUserID(c),
				"role_id":      apphttp.GetRoleID(c),
				"departamento": apphttp.GetDepartamento(c),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID int64, role int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID:       userID,
		RoleID:       role,
		Departamento: "ventas",
		Nombre:       "Ana",
	}, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func get(t *testing.T, app *fiber.App, bearer, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AdminAccede(t *testing.T) {
	app := buildTestApp(1)
	resp := get(t, app, tokenFor(t, 7, 1), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 7, body["user_id"])
	assert.EqualValues(t, 1, body["role_id"])
	assert.Equal(t, "ventas", body["departamento"])
}

func TestRequireRole_ColaboradorBloqueado(t *testing.T) {
	app := buildTestApp(1)
	resp := get(t, app, tokenFor(t, 7, 2), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_VariosRoles(t *testing.T) {
	app := buildTestApp(1, 2)
	resp := get(t, app, tokenFor(t, 7, 2), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	app := buildTestApp(1)
	resp := get(t, app, tokenFor(t, 7, 0), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_SinToken401(t *testing.T) {
	app := buildTestApp(1)
	resp := get(t, app, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido403(t *testing.T) {
	app := buildTestApp(1)
	resp := get(t, app, "token.invalido.aqui", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado403(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: 1, RoleID: 1}, testIssuer, -1)
	require.NoError(t, err)

	resp := get(t, buildTestApp(1), tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_CookieTienePrioridad(t *testing.T) {
	app := buildTestApp(1)
	// cookie de admin válida, bearer basura: gana la cookie
	resp := get(t, app, "basura", tokenFor(t, 3, 1))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 3, body["user_id"])
}

func TestAuthMiddleware_FirmaDeOtroSecreto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", pkgjwt.Identity{UserID: 1, RoleID: 1}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := get(t, buildTestApp(1), "", tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
