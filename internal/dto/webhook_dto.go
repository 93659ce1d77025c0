package dto

// ClerkEvent is the envelope Clerk posts to the webhook endpoint after
// svix signature verification. Field names follow the Clerk payload.
type ClerkEvent struct {
	Type string        `json:"type"`
	Data ClerkUserData `json:"data"`
}

type ClerkUserData struct {
	ID             string              `json:"id"`
	EmailAddresses []ClerkEmailAddress `json:"email_addresses"`
	FirstName      *string             `json:"first_name"`
	LastName       *string             `json:"last_name"`
	ImageURL       *string             `json:"image_url"`
}

type ClerkEmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the first email address on the account, matching
// how the provider orders them. Empty when the account has none.
func (d *ClerkUserData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// WebhookAck is returned for every payload that passes signature
// verification, regardless of reconciliation outcome.
type WebhookAck struct {
	Success bool `json:"success"`
}
