package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByNameFunc  func(ctx context.Context, name string) (*domain.Category, error)
	FindAllFunc     func(ctx context.Context) ([]*domain.Category, error)
	GetOrCreateFunc func(ctx context.Context, name string) (*domain.Category, error)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.Category{BaseModel: domain.BaseModel{ID: id}, Name: "tecnologia"}, nil
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepository) GetOrCreate(ctx context.Context, name string) (*domain.Category, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, name)
	}
	return nil, nil
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	CreateFunc              func(ctx context.Context, event *domain.Event) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	UpdateFunc              func(ctx context.Context, event *domain.Event) error
	UpdateStatusFunc        func(ctx context.Context, id uuid.UUID, status domain.EventStatus) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	FindUpcomingFunc        func(ctx context.Context, now time.Time, limit int) ([]*domain.Event, error)
	FindPopularFunc         func(ctx context.Context, now time.Time, limit int) ([]*domain.Event, error)
	FindByCreatorFunc       func(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error)
	FindEnrolledFunc        func(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error)
	FindEndedUnfinishedFunc func(ctx context.Context, now time.Time) ([]*domain.Event, error)
	CountParticipantsFunc   func(ctx context.Context, eventID uuid.UUID) (int64, error)
	CountByStatusFunc       func(ctx context.Context, status domain.EventStatus) (int64, error)
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockEventRepository) FindUpcoming(ctx context.Context, now time.Time, limit int) ([]*domain.Event, error) {
	if m.FindUpcomingFunc != nil {
		return m.FindUpcomingFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *MockEventRepository) FindPopular(ctx context.Context, now time.Time, limit int) ([]*domain.Event, error) {
	if m.FindPopularFunc != nil {
		return m.FindPopularFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *MockEventRepository) FindByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	if m.FindByCreatorFunc != nil {
		return m.FindByCreatorFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockEventRepository) FindEnrolled(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	if m.FindEnrolledFunc != nil {
		return m.FindEnrolledFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockEventRepository) FindEndedUnfinished(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	if m.FindEndedUnfinishedFunc != nil {
		return m.FindEndedUnfinishedFunc(ctx, now)
	}
	return nil, nil
}

func (m *MockEventRepository) CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error) {
	if m.CountParticipantsFunc != nil {
		return m.CountParticipantsFunc(ctx, eventID)
	}
	return 0, nil
}

func (m *MockEventRepository) CountByStatus(ctx context.Context, status domain.EventStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

// MockParticipationRepository is a mock implementation of ParticipationRepository
type MockParticipationRepository struct {
	EnrollFunc               func(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error)
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Participation, error)
	FindByEventAndUserFunc   func(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error)
	FindByEventIDFunc        func(ctx context.Context, eventID uuid.UUID) ([]*domain.Participation, error)
	FindByUserIDFunc         func(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error)
	FindEligibleByUserFunc   func(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error)
	UpdateFunc               func(ctx context.Context, participation *domain.Participation) error
	RemoveFunc               func(ctx context.Context, eventID, userID uuid.UUID) error
	HasAttendanceRecordsFunc func(ctx context.Context, eventID uuid.UUID) (bool, error)
}

func (m *MockParticipationRepository) Enroll(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error) {
	if m.EnrollFunc != nil {
		return m.EnrollFunc(ctx, eventID, userID)
	}
	return nil, nil
}

func (m *MockParticipationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Participation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockParticipationRepository) FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error) {
	if m.FindByEventAndUserFunc != nil {
		return m.FindByEventAndUserFunc(ctx, eventID, userID)
	}
	return nil, nil
}

func (m *MockParticipationRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*domain.Participation, error) {
	if m.FindByEventIDFunc != nil {
		return m.FindByEventIDFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockParticipationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockParticipationRepository) FindEligibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error) {
	if m.FindEligibleByUserFunc != nil {
		return m.FindEligibleByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockParticipationRepository) Update(ctx context.Context, participation *domain.Participation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, participation)
	}
	return nil
}

func (m *MockParticipationRepository) Remove(ctx context.Context, eventID, userID uuid.UUID) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, eventID, userID)
	}
	return nil
}

func (m *MockParticipationRepository) HasAttendanceRecords(ctx context.Context, eventID uuid.UUID) (bool, error) {
	if m.HasAttendanceRecordsFunc != nil {
		return m.HasAttendanceRecordsFunc(ctx, eventID)
	}
	return false, nil
}

// MockTemplateRepository is a mock implementation of CertificateTemplateRepository
type MockTemplateRepository struct {
	CreateFunc         func(ctx context.Context, template *domain.CertificateTemplate) error
	FindByIDAndOwnerFunc func(ctx context.Context, id, userID uuid.UUID) (*domain.CertificateTemplate, error)
	FindByOwnerFunc    func(ctx context.Context, userID uuid.UUID) ([]*domain.CertificateTemplate, error)
	UpdateFunc         func(ctx context.Context, template *domain.CertificateTemplate) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *MockTemplateRepository) Create(ctx context.Context, template *domain.CertificateTemplate) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, template)
	}
	return nil
}

func (m *MockTemplateRepository) FindByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*domain.CertificateTemplate, error) {
	if m.FindByIDAndOwnerFunc != nil {
		return m.FindByIDAndOwnerFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockTemplateRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.CertificateTemplate, error) {
	if m.FindByOwnerFunc != nil {
		return m.FindByOwnerFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTemplateRepository) Update(ctx context.Context, template *domain.CertificateTemplate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, template)
	}
	return nil
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockBlacklist is a mock implementation of TokenBlacklist
type MockBlacklist struct {
	AddFunc func(ctx context.Context, token string, ttl time.Duration) error
}

func (m *MockBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, token, ttl)
	}
	return nil
}

// MockAutoFinisher is a mock implementation of AutoFinisher
type MockAutoFinisher struct {
	AutoFinishFunc func(ctx context.Context, event *domain.Event) (bool, error)
}

func (m *MockAutoFinisher) AutoFinish(ctx context.Context, event *domain.Event) (bool, error) {
	if m.AutoFinishFunc != nil {
		return m.AutoFinishFunc(ctx, event)
	}
	return false, nil
}
