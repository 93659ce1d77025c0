package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"vendorhub-backend/internal/dto"
	"vendorhub-backend/internal/models"
	"vendorhub-backend/internal/repositories"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrValidation   = errors.New("validation failed")
)

// MetadataWriter is the slice of the identity-provider API the user
// service needs. clerk.Client satisfies it.
type MetadataWriter interface {
	UpdateUserMetadata(ctx context.Context, clerkID string, metadata map[string]interface{}) error
}

type UserService struct {
	users    repositories.UserRepository
	clerk    MetadataWriter
	validate *validator.Validate
}

func NewUserService(users repositories.UserRepository, clerk MetadataWriter) *UserService {
	return &UserService{
		users:    users,
		clerk:    clerk,
		validate: validator.New(),
	}
}

func (s *UserService) GetByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	user, err := s.users.FindByClerkID(ctx, clerkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CompleteOnboarding persists the company profile, flips
// onboarding_complete, and mirrors the flag into Clerk public metadata.
// The two writes are not atomic: the local commit stands even when the
// provider write fails, and the caller sees that failure. The call is
// idempotent, so retrying converges both systems.
func (s *UserService) CompleteOnboarding(ctx context.Context, clerkID string, req *dto.OnboardingRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user, err := s.users.CompleteOnboarding(ctx, clerkID, req.CompanyName, req.Category, req.Address)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.clerk.UpdateUserMetadata(ctx, clerkID, map[string]interface{}{
		"onboardingComplete": true,
	}); err != nil {
		slog.Error("clerk metadata update failed after local onboarding commit",
			"clerk_id", clerkID, "error", err)
		return nil, fmt.Errorf("failed to update identity provider metadata: %w", err)
	}

	return user, nil
}
