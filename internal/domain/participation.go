package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParticipationStatus represents the attendance state of an enrollment
type ParticipationStatus string

const (
	ParticipationStatusPending ParticipationStatus = "PENDING"
	ParticipationStatusPresent ParticipationStatus = "PRESENT"
	ParticipationStatusAbsent  ParticipationStatus = "ABSENT"
)

// Participation is the join record between a user and an event.
// AttendedAt is non-nil iff Status is PRESENT.
type Participation struct {
	BaseModel
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index:idx_participations_user_id;uniqueIndex:uq_participations_user_event" json:"userId"`
	EventID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_participations_event_id;uniqueIndex:uq_participations_user_event" json:"eventId"`
	Status     ParticipationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_participations_status" json:"status"`
	AttendedAt *time.Time          `json:"attendedAt,omitempty"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}

// TableName specifies the table name for Participation
func (Participation) TableName() string {
	return "participations"
}

// HasAttendanceRecord reports whether attendance was explicitly taken
// for this participation.
func (p *Participation) HasAttendanceRecord() bool {
	return p.Status == ParticipationStatusPresent || p.Status == ParticipationStatusAbsent
}
