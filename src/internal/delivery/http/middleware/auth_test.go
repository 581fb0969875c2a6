package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"timebank-service/src/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, metadata token.Metadata, expiresIn time.Duration) string {
	t.Helper()
	claims := jwtClaims{
		Metadata: metadata,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestApp(adminOnly bool) *fiber.App {
	v := viper.New()
	v.Set("jwt.secret", "test-secret")

	app := fiber.New()
	handlers := []fiber.Handler{VerifyBearer(v)}
	if adminOnly {
		handlers = append(handlers, VerifyAdmin())
	}
	for _, h := range handlers {
		app.Use(h)
	}
	app.Get("/me", func(ctx *fiber.Ctx) error {
		auth := GetUser(ctx)
		return ctx.JSON(auth.Metadata)
	})
	return app
}

func TestVerifyBearerAcceptsValidToken(t *testing.T) {
	app := newTestApp(false)
	signed := signToken(t, "test-secret", token.Metadata{UserID: 7, Role: "member"}, time.Hour)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestVerifyBearerRejectsMissingHeader(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestVerifyBearerRejectsWrongSecret(t *testing.T) {
	app := newTestApp(false)
	signed := signToken(t, "other-secret", token.Metadata{UserID: 7}, time.Hour)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestVerifyBearerRejectsExpiredToken(t *testing.T) {
	app := newTestApp(false)
	signed := signToken(t, "test-secret", token.Metadata{UserID: 7}, -time.Hour)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestVerifyAdminRejectsMembers(t *testing.T) {
	app := newTestApp(true)
	signed := signToken(t, "test-secret", token.Metadata{UserID: 7, Role: "member"}, time.Hour)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestVerifyAdminAllowsAdmins(t *testing.T) {
	app := newTestApp(true)
	signed := signToken(t, "test-secret", token.Metadata{UserID: 1, Role: "admin"}, time.Hour)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
