package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindUpcoming(ctx context.Context, now time.Time, limit int) ([]*domain.Event, error)
	FindPopular(ctx context.Context, now time.Time, limit int) ([]*domain.Event, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error)
	FindEnrolled(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error)
	FindEndedUnfinished(ctx context.Context, now time.Time) ([]*domain.Event, error)
	CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status domain.EventStatus) (int64, error)
}

// eventRepositoryImpl is the GORM implementation of EventRepository
type eventRepositoryImpl struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepositoryImpl{db: db}
}

// Create creates a new event
func (r *eventRepositoryImpl) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID finds an event by ID with its category preloaded
func (r *eventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("User").
		Where("id = ?", id).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update persists all fields of an event
func (r *eventRepositoryImpl) Update(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// UpdateStatus updates only the lifecycle status of an event
func (r *eventRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete soft deletes an event, stamping both soft-delete fields
func (r *eventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(r.db.WithContext(ctx), &domain.Event{}, id)
}

// FindUpcoming lists events that have not started yet, newest first
func (r *eventRepositoryImpl) FindUpcoming(ctx context.Context, now time.Time, limit int) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("start_date >= ?", now).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindPopular lists upcoming events ordered by participant count
func (r *eventRepositoryImpl) FindPopular(ctx context.Context, now time.Time, limit int) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Joins("LEFT JOIN participations p ON p.event_id = events.id AND p.deleted_at IS NULL").
		Where("events.start_date >= ?", now).
		Group("events.id").
		Order("COUNT(p.id) DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindByCreator lists the events created by a teacher, newest first
func (r *eventRepositoryImpl) FindByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindEnrolled lists the events a student is enrolled in, soonest first
func (r *eventRepositoryImpl) FindEnrolled(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Joins("JOIN participations p ON p.event_id = events.id AND p.deleted_at IS NULL").
		Where("p.user_id = ?", userID).
		Order("events.start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindEndedUnfinished lists events whose end date has passed but whose
// status never reached a terminal state
func (r *eventRepositoryImpl) FindEndedUnfinished(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := r.db.WithContext(ctx).
		Where("end_date < ?", now).
		Where("status IN ?", []domain.EventStatus{domain.EventStatusOpen, domain.EventStatusClosed}).
		Order("end_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CountParticipants counts the enrollments of an event
func (r *eventRepositoryImpl) CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Participation{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts events in the given status
func (r *eventRepositoryImpl) CountByStatus(ctx context.Context, status domain.EventStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
