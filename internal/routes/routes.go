package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"vendorhub-backend/internal/config"
	"vendorhub-backend/internal/handlers"
	"vendorhub-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	webhookHandler *handlers.WebhookHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Webhooks are authenticated by payload signature, not by session,
	// and stay outside the rate limiter: the provider retries on any
	// non-2xx and a limiter would amplify those retries.
	app.Post("/webhooks/clerk", webhookHandler.HandleClerk)

	// Authenticated user routes: 60 req/min per IP
	users := app.Group("/users",
		limiter.New(limiter.Config{
			Max:               60,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}),
		middleware.Protected(cfg),
		middleware.SubjectContext(cfg),
	)
	users.Get("/me", userHandler.Me)
	users.Post("/onboarding", userHandler.CompleteOnboarding)
}
