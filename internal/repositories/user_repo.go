package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vendorhub-backend/internal/models"
)

// WebhookProfile carries the user fields the identity provider owns.
// Onboarding columns are deliberately absent so webhook writes can
// never touch them.
type WebhookProfile struct {
	Email     string
	FirstName string
	LastName  string
	ImageURL  string
}

// UserRepository is the persistence gateway for Clerk-synced users.
// Implementations must be safe for concurrent use; row-level atomicity
// is delegated to the store (single-statement upserts and updates).
type UserRepository interface {
	FindByClerkID(ctx context.Context, clerkID string) (*models.User, error)
	UpsertFromWebhook(ctx context.Context, clerkID string, profile WebhookProfile) error
	UpdateFromWebhook(ctx context.Context, clerkID string, profile WebhookProfile) error
	SoftDeleteByClerkID(ctx context.Context, clerkID string) (int64, error)
	CompleteOnboarding(ctx context.Context, clerkID, companyName, category, address string) (*models.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

var _ UserRepository = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertFromWebhook inserts a new user or, when the clerk_id already
// exists, refreshes only the provider-owned columns. A conflicting row
// that was soft-deleted keeps its deleted_at marker.
func (r *GormUserRepository) UpsertFromWebhook(ctx context.Context, clerkID string, profile WebhookProfile) error {
	user := models.User{
		ClerkID:   clerkID,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		ImageURL:  profile.ImageURL,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clerk_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "image_url", "updated_at"}),
	}).Create(&user).Error
}

func (r *GormUserRepository) UpdateFromWebhook(ctx context.Context, clerkID string, profile WebhookProfile) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("clerk_id = ?", clerkID).
		Updates(map[string]interface{}{
			"email":      profile.Email,
			"first_name": profile.FirstName,
			"last_name":  profile.LastName,
			"image_url":  profile.ImageURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteByClerkID marks the row deleted. Zero affected rows means
// the user is unknown or already deleted; callers treat that as a no-op.
func (r *GormUserRepository) SoftDeleteByClerkID(ctx context.Context, clerkID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).Delete(&models.User{})
	return res.RowsAffected, res.Error
}

func (r *GormUserRepository) CompleteOnboarding(ctx context.Context, clerkID, companyName, category, address string) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("clerk_id = ?", clerkID).
		Updates(map[string]interface{}{
			"company_name":        companyName,
			"category":            category,
			"address":             address,
			"onboarding_complete": true,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByClerkID(ctx, clerkID)
}
