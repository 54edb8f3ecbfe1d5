package middleware

import (
	"net/http/httptest"
	"testing"

	"sinifplanim/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "mehmet", "Mehmet Hoca", "teacher")
	require.NoError(t, err)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "mehmet", claims.Username)
	assert.Equal(t, "teacher", claims.Role)
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	_, err := VerifyJWT("not.a.token")
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", AuthRequired(), func(c *fiber.Ctx) error {
		claims, _ := c.Locals("user").(*domain.Claims)
		return c.JSON(fiber.Map{"username": claims.Username})
	})

	// No token.
	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Bad token.
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Valid token.
	token, err := GenerateJWT(1, "ayse", "Ayşe Öğretmen", "teacher")
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AuthRequired(), RoleRequired("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	teacherToken, err := GenerateJWT(1, "ayse", "Ayşe Öğretmen", "teacher")
	require.NoError(t, err)
	adminToken, err := GenerateJWT(2, "root", "Admin", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+teacherToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
