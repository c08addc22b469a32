package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// CreateTemplateRequest represents the payload to create a certificate template
type CreateTemplateRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	HTMLContent string  `json:"htmlContent" binding:"required"`
	Width       float64 `json:"width" binding:"required,min=100,max=2000"`
	Height      float64 `json:"height" binding:"required,min=100,max=2000"`
}

// UpdateTemplateRequest represents the payload to edit a certificate template
type UpdateTemplateRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	HTMLContent string  `json:"htmlContent" binding:"required"`
	Width       float64 `json:"width" binding:"required,min=100,max=2000"`
	Height      float64 `json:"height" binding:"required,min=100,max=2000"`
}

// QuickPreviewRequest previews an in-progress template without persisting it
type QuickPreviewRequest struct {
	HTMLContent string  `json:"htmlContent" binding:"required"`
	Width       float64 `json:"width" binding:"omitempty,min=100,max=2000"`
	Height      float64 `json:"height" binding:"omitempty,min=100,max=2000"`
}

// QuickPreviewResponse carries the rendered preview markup
type QuickPreviewResponse struct {
	PreviewContent string  `json:"previewContent"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
}

// TemplateResponse represents a certificate template in API responses
type TemplateResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	UserID      uuid.UUID `json:"userId"`
	HTMLContent string    `json:"htmlContent"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTemplateResponse converts a domain.CertificateTemplate to a TemplateResponse
func NewTemplateResponse(t *domain.CertificateTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		UserID:      t.UserID,
		HTMLContent: t.HTMLContent,
		Width:       t.Width,
		Height:      t.Height,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
