package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub-backend/internal/config"
)

func subjectTestApp(cfg *config.Config, claims jwt.MapClaims) *fiber.App {
	app := fiber.New()
	if claims != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user", &jwt.Token{Claims: claims, Valid: true})
			return c.Next()
		})
	}
	app.Use(SubjectContext(cfg))
	app.Get("/probe", func(c *fiber.Ctx) error {
		sub, err := GetSubject(c)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(sub)
	})
	return app
}

func probe(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/probe", nil))
	require.NoError(t, err)
	return resp
}

func TestSubjectContext_BindsSubject(t *testing.T) {
	cfg := &config.Config{ClerkAuthorizedParties: []string{"http://localhost:3000"}}
	app := subjectTestApp(cfg, jwt.MapClaims{
		"sub": "user_abc",
		"azp": "http://localhost:3000",
	})

	resp := probe(t, app)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSubjectContext_NoToken(t *testing.T) {
	app := subjectTestApp(&config.Config{}, nil)
	resp := probe(t, app)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubjectContext_MissingSub(t *testing.T) {
	app := subjectTestApp(&config.Config{}, jwt.MapClaims{"azp": "http://localhost:3000"})
	resp := probe(t, app)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubjectContext_UnauthorizedParty(t *testing.T) {
	cfg := &config.Config{ClerkAuthorizedParties: []string{"http://localhost:3000"}}
	app := subjectTestApp(cfg, jwt.MapClaims{
		"sub": "user_abc",
		"azp": "https://evil.example",
	})

	resp := probe(t, app)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubjectContext_IssuerMismatch(t *testing.T) {
	cfg := &config.Config{ClerkIssuer: "https://clerk.example.com"}
	app := subjectTestApp(cfg, jwt.MapClaims{
		"sub": "user_abc",
		"iss": "https://other.example.com",
	})

	resp := probe(t, app)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetSubject_Empty(t *testing.T) {
	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		_, err := GetSubject(c)
		assert.ErrorIs(t, err, ErrNoSubject)
		return c.SendStatus(fiber.StatusOK)
	})
	resp := probe(t, app)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
