package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// CertificateEligibilityResponse is one entry in the caller's list of
// participations eligible for a certificate.
type CertificateEligibilityResponse struct {
	ParticipationID uuid.UUID  `json:"participationId"`
	EventID         uuid.UUID  `json:"eventId"`
	EventName       string     `json:"eventName"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	Country         string     `json:"country"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         time.Time  `json:"endDate"`
	DurationHours   float64    `json:"durationHours"`
	AttendedAt      *time.Time `json:"attendedAt,omitempty"`
}

// NewCertificateEligibilityResponse builds an eligibility entry from a
// participation with its event preloaded.
func NewCertificateEligibilityResponse(p *domain.Participation) *CertificateEligibilityResponse {
	return &CertificateEligibilityResponse{
		ParticipationID: p.ID,
		EventID:         p.EventID,
		EventName:       p.Event.Name,
		City:            p.Event.City,
		State:           p.Event.State,
		Country:         p.Event.Country,
		StartDate:       p.Event.StartDate,
		EndDate:         p.Event.EndDate,
		DurationHours:   p.Event.DurationHours(),
		AttendedAt:      p.AttendedAt,
	}
}
