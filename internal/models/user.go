package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors the Clerk account it was created from. ClerkID is the
// only correlation key between the two systems and is never reassigned.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClerkID   string    `gorm:"size:255;not null;uniqueIndex" json:"clerk_id"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	FirstName string    `gorm:"size:255" json:"first_name"`
	LastName  string    `gorm:"size:255" json:"last_name"`
	ImageURL  string    `gorm:"size:1024" json:"image_url"`

	// Set through the onboarding endpoint only, never by webhooks.
	CompanyName        string `gorm:"size:100" json:"company_name"`
	Category           string `gorm:"size:100" json:"category"`
	Address            string `gorm:"size:100" json:"address"`
	OnboardingComplete bool   `gorm:"not null;default:false" json:"onboarding_complete"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
