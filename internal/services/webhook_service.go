package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
	"gorm.io/gorm"

	"vendorhub-backend/internal/dto"
	"vendorhub-backend/internal/repositories"
)

var (
	ErrMissingHeaders   = errors.New("missing svix headers")
	ErrMissingBody      = errors.New("missing request body")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// WebhookService verifies Clerk webhook deliveries and reconciles the
// local user table with the event they carry.
type WebhookService struct {
	users repositories.UserRepository
	wh    *svix.Webhook
}

func NewWebhookService(users repositories.UserRepository, webhookSecret string) (*WebhookService, error) {
	wh, err := svix.NewWebhook(webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init webhook verifier: %w", err)
	}
	return &WebhookService{users: users, wh: wh}, nil
}

// VerifyEvent validates the svix envelope and returns the parsed event.
// The signature covers the raw body bytes; callers must not re-serialize.
// Pure validation, no side effects.
func (s *WebhookService) VerifyEvent(body []byte, svixID, svixTimestamp, svixSignature string) (*dto.ClerkEvent, error) {
	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		return nil, ErrMissingHeaders
	}
	if len(body) == 0 {
		return nil, ErrMissingBody
	}

	headers := http.Header{}
	headers.Set("svix-id", svixID)
	headers.Set("svix-timestamp", svixTimestamp)
	headers.Set("svix-signature", svixSignature)

	// Verify also rejects timestamps outside the tolerance window,
	// which is what stops replayed deliveries.
	if err := s.wh.Verify(body, headers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var event dto.ClerkEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return &event, nil
}

// HandleEvent applies a verified event to the local store. Unrecognized
// event types are ignored.
func (s *WebhookService) HandleEvent(ctx context.Context, event *dto.ClerkEvent) error {
	switch event.Type {
	case "user.created":
		return s.handleUserCreated(ctx, event)
	case "user.updated":
		return s.handleUserUpdated(ctx, event)
	case "user.deleted":
		return s.handleUserDeleted(ctx, event)
	default:
		return nil
	}
}

// handleUserCreated upserts by clerk_id: provider retries and
// out-of-order redelivery must not error and must not clobber
// onboarding fields written since the first delivery.
func (s *WebhookService) handleUserCreated(ctx context.Context, event *dto.ClerkEvent) error {
	if event.Data.ID == "" {
		return errors.New("user.created event without user id")
	}
	return s.users.UpsertFromWebhook(ctx, event.Data.ID, profileFromEvent(event))
}

func (s *WebhookService) handleUserUpdated(ctx context.Context, event *dto.ClerkEvent) error {
	if event.Data.ID == "" {
		return errors.New("user.updated event without user id")
	}
	err := s.users.UpdateFromWebhook(ctx, event.Data.ID, profileFromEvent(event))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Out-of-order delivery before user.created, or the row is
		// soft-deleted. Recoverable anomaly, surfaced to the caller
		// for logging but never resurrecting or creating a row.
		return fmt.Errorf("%w: clerk_id %s", ErrUserNotFound, event.Data.ID)
	}
	return err
}

func (s *WebhookService) handleUserDeleted(ctx context.Context, event *dto.ClerkEvent) error {
	if event.Data.ID == "" {
		return nil
	}
	rows, err := s.users.SoftDeleteByClerkID(ctx, event.Data.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		slog.Info("user.deleted for unknown or already deleted user", "clerk_id", event.Data.ID)
	}
	return nil
}

func profileFromEvent(event *dto.ClerkEvent) repositories.WebhookProfile {
	return repositories.WebhookProfile{
		Email:     event.Data.PrimaryEmail(),
		FirstName: strVal(event.Data.FirstName),
		LastName:  strVal(event.Data.LastName),
		ImageURL:  strVal(event.Data.ImageURL),
	}
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
