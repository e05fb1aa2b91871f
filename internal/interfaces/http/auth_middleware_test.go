package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ihttp "github.com/jhoicas/eventos-api/internal/interfaces/http"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/pkg/token"
)

// fakeLoader sirve usuarios desde memoria para el middleware.
type fakeLoader struct {
	users map[int64]*entity.User
}

func (f *fakeLoader) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return f.users[id], nil
}

func newCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(token.Config{Secret: "secreto-de-test", Issuer: "eventos-api"})
	require.NoError(t, err)
	return codec
}

// newApp monta una ruta protegida y una de solo-admin para ejercitar los middlewares.
func newApp(codec *token.Codec, loader *fakeLoader) *fiber.App {
	app := fiber.New()
	app.Get("/protegida", ihttp.AuthMiddleware(codec, loader), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": ihttp.GetUserID(c),
			"email":   ihttp.GetEmail(c),
			"role":    ihttp.GetRole(c),
			"name":    ihttp.GetName(c),
		})
	})
	app.Get("/opcional", ihttp.AuthMiddlewareOptional(codec, loader), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": ihttp.GetUserID(c), "role": ihttp.GetRole(c)})
	})
	app.Get("/admin", ihttp.AuthMiddleware(codec, loader), ihttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/admin-sin-auth", ihttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func activeUser(id int64, role string) *entity.User {
	return &entity.User{
		ID:            id,
		Name:          "Ana",
		Email:         "ana@example.com",
		Role:          role,
		EmailVerified: true,
		Active:        true,
	}
}

func errCode(t *testing.T, body io.Reader) string {
	t.Helper()
	var out struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out.Code
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	codec := newCodec(t)
	loader := &fakeLoader{users: map[int64]*entity.User{7: activeUser(7, entity.RoleUser)}}
	app := newApp(codec, loader)

	access, err := codec.IssueAccess(7, "ana@example.com", entity.RoleUser, "Ana")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	// La identidad que ven los handlers sale de la base, no del token.
	assert.Equal(t, float64(7), out["user_id"])
	assert.Equal(t, "ana@example.com", out["email"])
	assert.Equal(t, entity.RoleUser, out["role"])
	assert.Equal(t, "Ana", out["name"])
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := newApp(newCodec(t), &fakeLoader{users: map[int64]*entity.User{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/protegida", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errCode(t, resp.Body))
}

func TestAuthMiddleware_EsquemaNoBearer(t *testing.T) {
	app := newApp(newCodec(t), &fakeLoader{users: map[int64]*entity.User{}})

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errCode(t, resp.Body))
}

func TestAuthMiddleware_TokenBasura(t *testing.T) {
	app := newApp(newCodec(t), &fakeLoader{users: map[int64]*entity.User{}})

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errCode(t, resp.Body))
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	expiredCodec, err := token.NewCodec(token.Config{
		Secret:    "secreto-de-test",
		AccessTTL: time.Nanosecond,
	})
	require.NoError(t, err)
	loader := &fakeLoader{users: map[int64]*entity.User{7: activeUser(7, entity.RoleUser)}}
	app := newApp(expiredCodec, loader)

	access, err := expiredCodec.IssueAccess(7, "ana@example.com", entity.RoleUser, "Ana")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errCode(t, resp.Body))
}

func TestAuthMiddleware_RefreshComoAccess(t *testing.T) {
	codec := newCodec(t)
	loader := &fakeLoader{users: map[int64]*entity.User{7: activeUser(7, entity.RoleUser)}}
	app := newApp(codec, loader)

	// Un refresh token firmado con el mismo secret no sirve como token de acceso.
	refresh, err := codec.IssueRefresh(7, "ana@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errCode(t, resp.Body))
}

func TestAuthMiddleware_UsuarioInexistente(t *testing.T) {
	codec := newCodec(t)
	app := newApp(codec, &fakeLoader{users: map[int64]*entity.User{}})

	access, err := codec.IssueAccess(99, "fantasma@example.com", entity.RoleUser, "Fantasma")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errCode(t, resp.Body))
}

func TestAuthMiddleware_CuentaInactiva(t *testing.T) {
	codec := newCodec(t)
	inactive := activeUser(7, entity.RoleUser)
	inactive.Active = false
	app := newApp(codec, &fakeLoader{users: map[int64]*entity.User{7: inactive}})

	// El token sigue siendo válido; la suspensión corta el acceso igualmente.
	access, err := codec.IssueAccess(7, "ana@example.com", entity.RoleUser, "Ana")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_INACTIVE", errCode(t, resp.Body))
}

func TestAuthMiddlewareOptional_AnonimoPasa(t *testing.T) {
	app := newApp(newCodec(t), &fakeLoader{users: map[int64]*entity.User{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/opcional", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, float64(0), out["user_id"])
	assert.Equal(t, "", out["role"])
}

func TestAuthMiddlewareOptional_TokenInvalidoPasaComoAnonimo(t *testing.T) {
	app := newApp(newCodec(t), &fakeLoader{users: map[int64]*entity.User{}})

	req := httptest.NewRequest("GET", "/opcional", nil)
	req.Header.Set("Authorization", "Bearer basura")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, float64(0), out["user_id"])
}

func TestAuthMiddlewareOptional_TokenValidoAdjuntaIdentidad(t *testing.T) {
	codec := newCodec(t)
	loader := &fakeLoader{users: map[int64]*entity.User{7: activeUser(7, entity.RoleAdmin)}}
	app := newApp(codec, loader)

	access, err := codec.IssueAccess(7, "ana@example.com", entity.RoleAdmin, "Ana")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/opcional", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, float64(7), out["user_id"])
	assert.Equal(t, entity.RoleAdmin, out["role"])
}

func TestRequireAdmin_AdminPasa(t *testing.T) {
	codec := newCodec(t)
	loader := &fakeLoader{users: map[int64]*entity.User{1: activeUser(1, entity.RoleAdmin)}}
	app := newApp(codec, loader)

	access, err := codec.IssueAccess(1, "ana@example.com", entity.RoleAdmin, "Ana")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_UsuarioComunRecibe403(t *testing.T) {
	codec := newCodec(t)
	loader := &fakeLoader{users: map[int64]*entity.User{7: activeUser(7, entity.RoleUser)}}
	app := newApp(codec, loader)

	access, err := codec.IssueAccess(7, "ana@example.com", entity.RoleUser, "Ana")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errCode(t, resp.Body))
}

func TestRequireAdmin_SinIdentidadRecibe401(t *testing.T) {
	app := newApp(newCodec(t), &fakeLoader{users: map[int64]*entity.User{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-sin-auth", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", errCode(t, resp.Body))
}
