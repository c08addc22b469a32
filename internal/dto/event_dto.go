package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// CreateEventRequest represents the payload to create an event
type CreateEventRequest struct {
	Name              string    `json:"name" binding:"required,max=100"`
	Description       string    `json:"description" binding:"max=300"`
	Topics            []string  `json:"topics" binding:"dive,max=100"`
	Street            string    `json:"street" binding:"required,max=255"`
	Complement        string    `json:"complement" binding:"max=100"`
	City              string    `json:"city" binding:"required,max=100"`
	State             string    `json:"state" binding:"required,max=100"`
	Country           string    `json:"country" binding:"max=100"`
	ZipCode           string    `json:"zipCode" binding:"required,max=20"`
	StartDate         time.Time `json:"startDate" binding:"required,future"`
	EndDate           time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
	ParticipantsLimit *int      `json:"participantsLimit" binding:"omitempty,min=1"`
	ImageURL          string    `json:"imageUrl" binding:"omitempty,url,max=500"`
	CategoryID        uuid.UUID `json:"categoryId" binding:"required"`
}

// UpdateEventRequest represents the payload to edit an event.
// Dates are revalidated against each other but not against the clock,
// so events already underway can still have details corrected.
type UpdateEventRequest struct {
	Name              string    `json:"name" binding:"required,max=100"`
	Description       string    `json:"description" binding:"max=300"`
	Topics            []string  `json:"topics" binding:"dive,max=100"`
	Street            string    `json:"street" binding:"required,max=255"`
	Complement        string    `json:"complement" binding:"max=100"`
	City              string    `json:"city" binding:"required,max=100"`
	State             string    `json:"state" binding:"required,max=100"`
	Country           string    `json:"country" binding:"max=100"`
	ZipCode           string    `json:"zipCode" binding:"required,max=20"`
	StartDate         time.Time `json:"startDate" binding:"required"`
	EndDate           time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
	ParticipantsLimit *int      `json:"participantsLimit" binding:"omitempty,min=1"`
	ImageURL          string    `json:"imageUrl" binding:"omitempty,url,max=500"`
	CategoryID        uuid.UUID `json:"categoryId" binding:"required"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	Topics            []string           `json:"topics"`
	Street            string             `json:"street"`
	Complement        string             `json:"complement,omitempty"`
	City              string             `json:"city"`
	State             string             `json:"state"`
	Country           string             `json:"country"`
	ZipCode           string             `json:"zipCode"`
	StartDate         time.Time          `json:"startDate"`
	EndDate           time.Time          `json:"endDate"`
	Status            domain.EventStatus `json:"status"`
	ParticipantsLimit *int               `json:"participantsLimit,omitempty"`
	ImageURL          string             `json:"imageUrl,omitempty"`
	CategoryID        uuid.UUID          `json:"categoryId"`
	CategoryName      string             `json:"categoryName,omitempty"`
	CreatorID         uuid.UUID          `json:"creatorId"`
	ParticipantCount  int64              `json:"participantCount"`
	AvailableSpots    *int64             `json:"availableSpots,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// EventDashboardResponse groups the event listings shown on the events page.
// Created is teacher-only, Enrolled is student-only.
type EventDashboardResponse struct {
	New      []*EventResponse `json:"new"`
	Popular  []*EventResponse `json:"popular"`
	Created  []*EventResponse `json:"created,omitempty"`
	Enrolled []*EventResponse `json:"enrolled,omitempty"`
}

// LifecycleResult is the outcome of a lifecycle transition. Notice carries
// the user-facing message for idempotent no-ops; Changed reports whether the
// status actually moved.
type LifecycleResult struct {
	Event   *EventResponse `json:"event"`
	Notice  string         `json:"-"`
	Changed bool           `json:"-"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewEventResponse converts a domain.Event to an EventResponse
func NewEventResponse(e *domain.Event, participantCount int64) *EventResponse {
	resp := &EventResponse{
		ID:                e.ID,
		Name:              e.Name,
		Description:       e.Description,
		Topics:            e.Topics,
		Street:            e.Street,
		Complement:        e.Complement,
		City:              e.City,
		State:             e.State,
		Country:           e.Country,
		ZipCode:           e.ZipCode,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate,
		Status:            e.Status,
		ParticipantsLimit: e.ParticipantsLimit,
		ImageURL:          e.ImageURL,
		CategoryID:        e.CategoryID,
		CategoryName:      e.Category.Name,
		CreatorID:         e.UserID,
		ParticipantCount:  participantCount,
		AvailableSpots:    e.AvailableSpots(participantCount),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if resp.Topics == nil {
		resp.Topics = []string{}
	}
	return resp
}
