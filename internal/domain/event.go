package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusOpen     EventStatus = "OPEN"
	EventStatusClosed   EventStatus = "CLOSED"
	EventStatusFinished EventStatus = "FINISHED"
	EventStatusCanceled EventStatus = "CANCELED"
)

// Event represents an event created and managed by a teacher
type Event struct {
	BaseModel
	Name              string         `gorm:"type:varchar(100);not null" json:"name"`
	Description       string         `gorm:"type:varchar(300)" json:"description"`
	Topics            pq.StringArray `gorm:"type:text[]" json:"topics"`
	Street            string         `gorm:"type:varchar(255);not null" json:"street"`
	Complement        string         `gorm:"type:varchar(100)" json:"complement"`
	City              string         `gorm:"type:varchar(100);not null" json:"city"`
	State             string         `gorm:"type:varchar(100);not null" json:"state"`
	Country           string         `gorm:"type:varchar(100);not null;default:'Brasil'" json:"country"`
	ZipCode           string         `gorm:"type:varchar(20);not null" json:"zipCode"`
	StartDate         time.Time      `gorm:"not null;index:idx_events_dates,priority:1" json:"startDate"`
	EndDate           time.Time      `gorm:"not null;index:idx_events_dates,priority:2" json:"endDate"`
	Status            EventStatus    `gorm:"type:varchar(20);not null;default:'OPEN';index:idx_events_status" json:"status"`
	ParticipantsLimit *int           `json:"participantsLimit"`
	ImageURL          string         `gorm:"type:varchar(500)" json:"imageUrl"`
	CategoryID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_events_category_id" json:"categoryId"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_events_user_id" json:"userId"`

	Category     Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	User         User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Participants []Participation `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "events"
}

// IsFull reports whether the event has reached its participant limit.
// Events without a limit are never full.
func (e *Event) IsFull(participantCount int64) bool {
	if e.ParticipantsLimit == nil {
		return false
	}
	return participantCount >= int64(*e.ParticipantsLimit)
}

// AvailableSpots returns the remaining capacity, or nil when unlimited
func (e *Event) AvailableSpots(participantCount int64) *int64 {
	if e.ParticipantsLimit == nil {
		return nil
	}
	spots := int64(*e.ParticipantsLimit) - participantCount
	if spots < 0 {
		spots = 0
	}
	return &spots
}

// HasEnded reports whether the event's end date has passed
func (e *Event) HasEnded(now time.Time) bool {
	return !e.EndDate.After(now)
}

// HasStarted reports whether the event's start date has passed
func (e *Event) HasStarted(now time.Time) bool {
	return !e.StartDate.After(now)
}

// DurationHours returns the event workload in hours, rounded to one decimal.
// Printed on certificates.
func (e *Event) DurationHours() float64 {
	hours := e.EndDate.Sub(e.StartDate).Hours()
	return math.Round(hours*10) / 10
}
