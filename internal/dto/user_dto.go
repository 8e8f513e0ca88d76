package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id          uuid.UUID            `json:"id"`
	Email       string               `json:"email"`
	FullName    string               `json:"full_name"`
	Role        string               `json:"role"`
	Status      string               `json:"status"`
	Preferences *ChatPreferencesDTO  `json:"preferences,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// ChatPreferencesDTO is the profile the relay appends to every system
// prompt. All fields are optional free text.
type ChatPreferencesDTO struct {
	Name            string `json:"name"`
	Goal            string `json:"goal"`
	ExperienceLevel string `json:"experienceLevel"`
}

type UpdatePreferencesRequest struct {
	Name            string `json:"name" validate:"omitempty,max=100"`
	Goal            string `json:"goal" validate:"omitempty,max=500"`
	ExperienceLevel string `json:"experience_level" validate:"omitempty,max=100"`
}

type SubscriptionStatusResponse struct {
	Subscribed       bool       `json:"subscribed"`
	SubscriptionTier string     `json:"subscription_tier"`
	SubscriptionEnd  *time.Time `json:"subscription_end,omitempty"`
}
