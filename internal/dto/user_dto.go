package dto

// OnboardingRequest completes a user's profile after first sign-in.
type OnboardingRequest struct {
	CompanyName string `json:"companyName" validate:"required,min=2,max=100"`
	Category    string `json:"category" validate:"required,min=2,max=100"`
	Address     string `json:"address" validate:"required,min=2,max=100"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
