package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// Sentinel errors returned by the transactional enroll path
var (
	ErrEventNotOpen    = errors.New("event is not accepting enrollments")
	ErrEventFull       = errors.New("event is full")
	ErrAlreadyEnrolled = errors.New("user is already enrolled")
)

// ParticipationRepository defines the interface for participation data access
type ParticipationRepository interface {
	Enroll(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Participation, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*domain.Participation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error)
	FindEligibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error)
	Update(ctx context.Context, participation *domain.Participation) error
	Remove(ctx context.Context, eventID, userID uuid.UUID) error
	HasAttendanceRecords(ctx context.Context, eventID uuid.UUID) (bool, error)
}

// participationRepositoryImpl is the GORM implementation of ParticipationRepository
type participationRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new instance of ParticipationRepository
func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepositoryImpl{db: db}
}

// Enroll inserts a PENDING participation inside a transaction that re-checks
// the event status and capacity under a row lock, so concurrent enrollments
// cannot exceed the participant limit. The (user, event) unique index backs
// this up against duplicate inserts.
func (r *participationRepositoryImpl) Enroll(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error) {
	participation := &domain.Participation{
		EventID: eventID,
		UserID:  userID,
		Status:  domain.ParticipationStatusPending,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&domain.Event{})
		// SQLite serializes writers and has no FOR UPDATE syntax
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var event domain.Event
		if err := query.Where("id = ?", eventID).First(&event).Error; err != nil {
			return err
		}
		if event.Status != domain.EventStatusOpen {
			return ErrEventNotOpen
		}

		var count int64
		if err := tx.Model(&domain.Participation{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}
		if event.IsFull(count) {
			return ErrEventFull
		}

		var existing int64
		if err := tx.Model(&domain.Participation{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyEnrolled
		}

		return tx.Create(participation).Error
	})
	if err != nil {
		return nil, err
	}
	return participation, nil
}

// FindByID finds a participation by ID with its user preloaded
func (r *participationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Participation, error) {
	var participation domain.Participation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&participation).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

// FindByEventAndUser finds a participation by its (event, user) pair
func (r *participationRepositoryImpl) FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error) {
	var participation domain.Participation
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participation).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

// FindByEventID lists the participations of an event with users preloaded,
// ordered by enrollment time.
func (r *participationRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*domain.Participation, error) {
	var participations []*domain.Participation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participations).Error; err != nil {
		return nil, err
	}
	return participations, nil
}

// FindByUserID lists a user's participations with events preloaded
func (r *participationRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error) {
	var participations []*domain.Participation
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&participations).Error; err != nil {
		return nil, err
	}
	return participations, nil
}

// FindEligibleByUser lists the user's participations eligible for a
// certificate: PRESENT on a FINISHED event.
func (r *participationRepositoryImpl) FindEligibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error) {
	var participations []*domain.Participation
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Joins("JOIN events e ON e.id = participations.event_id AND e.deleted_at IS NULL").
		Where("participations.user_id = ? AND participations.status = ? AND e.status = ?",
			userID, domain.ParticipationStatusPresent, domain.EventStatusFinished).
		Order("e.end_date DESC").
		Find(&participations).Error; err != nil {
		return nil, err
	}
	return participations, nil
}

// Update persists all fields of a participation
func (r *participationRepositoryImpl) Update(ctx context.Context, participation *domain.Participation) error {
	return r.db.WithContext(ctx).Save(participation).Error
}

// Remove hard deletes a participation so the (user, event) unique index
// permits re-enrollment after a canceled enrollment.
func (r *participationRepositoryImpl) Remove(ctx context.Context, eventID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&domain.Participation{}).Error
}

// HasAttendanceRecords reports whether at least one participation of the
// event has an explicit PRESENT or ABSENT status.
func (r *participationRepositoryImpl) HasAttendanceRecords(ctx context.Context, eventID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Participation{}).
		Where("event_id = ? AND status IN ?", eventID,
			[]domain.ParticipationStatus{domain.ParticipationStatusPresent, domain.ParticipationStatusAbsent}).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
