package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// UpdateAttendanceRequest marks a participant present or absent
type UpdateAttendanceRequest struct {
	ParticipationID uuid.UUID `json:"participationId" binding:"required"`
	Status          string    `json:"status" binding:"required,oneof=PRESENT ABSENT"`
}

// ParticipationResponse represents an enrollment in API responses
type ParticipationResponse struct {
	ID              uuid.UUID                  `json:"id"`
	UserID          uuid.UUID                  `json:"userId"`
	EventID         uuid.UUID                  `json:"eventId"`
	ParticipantName string                     `json:"participantName,omitempty"`
	Status          domain.ParticipationStatus `json:"status"`
	AttendedAt      *time.Time                 `json:"attendedAt,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

// AttendanceListResponse is the attendance sheet for an event
type AttendanceListResponse struct {
	Event        *EventResponse           `json:"event"`
	Participants []*ParticipationResponse `json:"participants"`
	PresentCount int                      `json:"presentCount"`
	TotalCount   int                      `json:"totalCount"`
}

// EnrollmentResult is the outcome of an enrollment attempt. Notice carries
// the user-facing message when the request was an informational no-op.
type EnrollmentResult struct {
	Participation *ParticipationResponse `json:"participation,omitempty"`
	Notice        string                 `json:"-"`
	Created       bool                   `json:"-"`
}

// NewParticipationResponse converts a domain.Participation to a ParticipationResponse
func NewParticipationResponse(p *domain.Participation) *ParticipationResponse {
	resp := &ParticipationResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		EventID:    p.EventID,
		Status:     p.Status,
		AttendedAt: p.AttendedAt,
		CreatedAt:  p.CreatedAt,
	}
	if p.User.ID != uuid.Nil {
		resp.ParticipantName = p.User.FullName()
	}
	return resp
}
