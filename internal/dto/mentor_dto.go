package dto

import (
	"time"

	"github.com/google/uuid"
)

type MentorTemplateResponse struct {
	TemplateId  string `json:"template_id"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CreateMentorRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required,min=10,max=1000"`
	Color       string `json:"color" validate:"omitempty,max=30"`
	Icon        string `json:"icon" validate:"omitempty,max=50"`
}

type UpdateMentorRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required,min=10,max=1000"`
	Color       string `json:"color" validate:"omitempty,max=30"`
	Icon        string `json:"icon" validate:"omitempty,max=50"`
}

type MentorResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

type DeleteMentorRequest struct {
	MentorId uuid.UUID `json:"mentor_id" validate:"required"`
}
