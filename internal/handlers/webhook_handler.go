package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"vendorhub-backend/internal/dto"
	"vendorhub-backend/internal/services"
)

type WebhookHandler struct {
	webhookService *services.WebhookService
}

func NewWebhookHandler(webhookService *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// HandleClerk processes Clerk account lifecycle deliveries. The svix
// signature is computed over the raw body bytes, so the payload goes to
// the verifier exactly as received. Once a payload verifies, the
// endpoint always acks with success: failing here would only trigger
// provider-side retry storms for application-level anomalies.
func (h *WebhookHandler) HandleClerk(c *fiber.Ctx) error {
	event, err := h.webhookService.VerifyEvent(
		c.Body(),
		c.Get("svix-id"),
		c.Get("svix-timestamp"),
		c.Get("svix-signature"),
	)
	if err != nil {
		slog.Warn("webhook rejected", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: rejectionMessage(err),
		})
	}

	if err := h.webhookService.HandleEvent(c.UserContext(), event); err != nil {
		slog.Error("webhook reconciliation failed",
			"event_type", event.Type, "clerk_id", event.Data.ID, "error", err)
	}

	return c.JSON(dto.WebhookAck{Success: true})
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrMissingHeaders):
		return "Missing svix headers"
	case errors.Is(err, services.ErrMissingBody):
		return "Missing request body"
	case errors.Is(err, services.ErrInvalidSignature):
		return "Invalid signature"
	default:
		return "Invalid webhook payload"
	}
}
