package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vendorhub-backend/internal/middleware"
	"vendorhub-backend/internal/models"
	"vendorhub-backend/internal/services"
)

type stubMetadataWriter struct {
	calls int
	err   error
}

func (s *stubMetadataWriter) UpdateUserMetadata(ctx context.Context, clerkID string, metadata map[string]interface{}) error {
	s.calls++
	return s.err
}

// newUserTestApp wires the user routes behind a middleware that binds a
// fixed subject, standing in for the verified-JWT chain. An empty
// subject simulates an unauthenticated request surviving to the handler.
func newUserTestApp(subject string) (*fiber.App, *MockUserRepository, *stubMetadataWriter) {
	repo := new(MockUserRepository)
	writer := &stubMetadataWriter{}
	h := NewUserHandler(services.NewUserService(repo, writer))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if subject != "" {
			c.Locals(middleware.SubjectKey, subject)
		}
		return c.Next()
	})
	app.Get("/users/me", h.Me)
	app.Post("/users/onboarding", h.CompleteOnboarding)
	return app, repo, writer
}

func TestMe(t *testing.T) {
	app, repo, _ := newUserTestApp("u_1")
	repo.On("FindByClerkID", mock.Anything, "u_1").Return(&models.User{
		ClerkID: "u_1",
		Email:   "a@b.com",
	}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "u_1", user.ClerkID)
	assert.False(t, user.OnboardingComplete)
}

func TestMe_NoSubject(t *testing.T) {
	app, repo, _ := newUserTestApp("")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	repo.AssertNotCalled(t, "FindByClerkID", mock.Anything, mock.Anything)
}

func TestMe_UserNotFound(t *testing.T) {
	app, repo, _ := newUserTestApp("u_late")
	repo.On("FindByClerkID", mock.Anything, "u_late").Return(nil, gorm.ErrRecordNotFound)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func onboardingRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/users/onboarding", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCompleteOnboarding(t *testing.T) {
	app, repo, writer := newUserTestApp("u_1")
	repo.On("CompleteOnboarding", mock.Anything, "u_1", "Acme Corp", "Retail", "1 Main St").
		Return(&models.User{
			ClerkID:            "u_1",
			CompanyName:        "Acme Corp",
			Category:           "Retail",
			Address:            "1 Main St",
			OnboardingComplete: true,
		}, nil)

	resp, err := app.Test(onboardingRequest(t, map[string]string{
		"companyName": "Acme Corp",
		"category":    "Retail",
		"address":     "1 Main St",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, writer.calls)

	var user models.User
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &user))
	assert.True(t, user.OnboardingComplete)
	assert.Equal(t, "Acme Corp", user.CompanyName)
}

func TestCompleteOnboarding_ValidationFailure(t *testing.T) {
	app, repo, writer := newUserTestApp("u_1")

	resp, err := app.Test(onboardingRequest(t, map[string]string{
		"companyName": "A",
		"category":    "Retail",
		"address":     "1 Main St",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	repo.AssertNotCalled(t, "CompleteOnboarding",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, writer.calls)
}

func TestCompleteOnboarding_UnknownSubject(t *testing.T) {
	app, repo, _ := newUserTestApp("u_missing")
	repo.On("CompleteOnboarding", mock.Anything, "u_missing", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, gorm.ErrRecordNotFound)

	resp, err := app.Test(onboardingRequest(t, map[string]string{
		"companyName": "Acme Corp",
		"category":    "Retail",
		"address":     "1 Main St",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCompleteOnboarding_MalformedBody(t *testing.T) {
	app, repo, _ := newUserTestApp("u_1")

	req := httptest.NewRequest(http.MethodPost, "/users/onboarding", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	repo.AssertNotCalled(t, "CompleteOnboarding",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
