package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/metrics"
	"github.com/GabrielHenriqueHE/sinapse/internal/repository"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
)

const (
	dashboardListLimit = 10

	popularCacheKey = "events:dashboard:popular"
	popularCacheTTL = time.Minute
)

// AutoFinisher finishes ended events opportunistically during reads
type AutoFinisher interface {
	AutoFinish(ctx context.Context, event *domain.Event) (bool, error)
}

// EventService defines the interface for event business logic
type EventService interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	GetDashboard(ctx context.Context, userID uuid.UUID, role domain.Role) (*dto.EventDashboardResponse, error)
	UpdateEvent(ctx context.Context, eventID, userID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	CloseEvent(ctx context.Context, eventID, userID uuid.UUID) (*dto.LifecycleResult, error)
	CancelEvent(ctx context.Context, eventID, userID uuid.UUID) (*dto.LifecycleResult, error)
	FinishEvent(ctx context.Context, eventID, userID uuid.UUID) (*dto.LifecycleResult, error)
	DeleteEvent(ctx context.Context, eventID, userID uuid.UUID) error
	AutoFinish(ctx context.Context, event *domain.Event) (bool, error)
	ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error)
}

// eventServiceImpl is the implementation of EventService
type eventServiceImpl struct {
	eventRepo         repository.EventRepository
	categoryRepo      repository.CategoryRepository
	participationRepo repository.ParticipationRepository
	cache             *redis.Client
	metrics           *metrics.Metrics
	logger            *zap.Logger
}

// NewEventService creates a new instance of EventService. The cache client
// is optional; without it the popular listing is computed on every request.
func NewEventService(
	eventRepo repository.EventRepository,
	categoryRepo repository.CategoryRepository,
	participationRepo repository.ParticipationRepository,
	cache *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:         eventRepo,
		categoryRepo:      categoryRepo,
		participationRepo: participationRepo,
		cache:             cache,
		metrics:           m,
		logger:            logger,
	}
}

// CreateEvent creates an OPEN event owned by the given teacher
func (s *eventServiceImpl) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Categoria inválida.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao criar o evento.", err.Error())
	}

	country := req.Country
	if country == "" {
		country = "Brasil"
	}

	event := &domain.Event{
		Name:              req.Name,
		Description:       req.Description,
		Topics:            req.Topics,
		Street:            req.Street,
		Complement:        req.Complement,
		City:              req.City,
		State:             req.State,
		Country:           country,
		ZipCode:           req.ZipCode,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Status:            domain.EventStatusOpen,
		ParticipantsLimit: req.ParticipantsLimit,
		ImageURL:          req.ImageURL,
		CategoryID:        category.ID,
		UserID:            userID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao criar o evento.", err.Error())
	}
	event.Category = *category

	if s.metrics != nil {
		s.metrics.EventsCreatedTotal.Inc()
	}
	s.logger.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("creator_id", userID.String()),
	)

	return dto.NewEventResponse(event, 0), nil
}

// GetEvent returns an event with its participant count
func (s *eventServiceImpl) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	event, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.eventRepo.CountParticipants(ctx, id)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao buscar o evento.", err.Error())
	}
	return dto.NewEventResponse(event, count), nil
}

// GetDashboard returns the event listings for the events page, keyed by the
// caller's role. Anonymous callers see only the public listings.
func (s *eventServiceImpl) GetDashboard(ctx context.Context, userID uuid.UUID, role domain.Role) (*dto.EventDashboardResponse, error) {
	now := time.Now()

	upcoming, err := s.eventRepo.FindUpcoming(ctx, now, dashboardListLimit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao listar os eventos.", err.Error())
	}
	newList, err := s.toEventResponses(ctx, upcoming)
	if err != nil {
		return nil, err
	}

	popular, err := s.popularEvents(ctx, now)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventDashboardResponse{New: newList, Popular: popular}

	switch {
	case userID != uuid.Nil && role == domain.RoleTeacher:
		created, err := s.eventRepo.FindByCreator(ctx, userID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao listar os eventos.", err.Error())
		}
		if resp.Created, err = s.toEventResponses(ctx, created); err != nil {
			return nil, err
		}
	case userID != uuid.Nil && role == domain.RoleStudent:
		enrolled, err := s.eventRepo.FindEnrolled(ctx, userID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao listar os eventos.", err.Error())
		}
		if resp.Enrolled, err = s.toEventResponses(ctx, enrolled); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// popularEvents returns the popular listing, served from Redis when possible
func (s *eventServiceImpl) popularEvents(ctx context.Context, now time.Time) ([]*dto.EventResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, popularCacheKey).Bytes(); err == nil {
			var list []*dto.EventResponse
			if err := json.Unmarshal(cached, &list); err == nil {
				return list, nil
			}
		}
	}

	events, err := s.eventRepo.FindPopular(ctx, now, dashboardListLimit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao listar os eventos.", err.Error())
	}
	list, err := s.toEventResponses(ctx, events)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(list); err == nil {
			if err := s.cache.Set(ctx, popularCacheKey, data, popularCacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache popular events", zap.Error(err))
			}
		}
	}

	return list, nil
}

// UpdateEvent edits an event. Finished events are immutable and the
// participant limit cannot drop below the current enrollment count.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, eventID, userID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Você não tem permissão para editar este evento.", "")
	}
	if event.Status == domain.EventStatusFinished {
		return nil, response.NewAppError(response.ErrCodeConflict, "Não é possível editar um evento finalizado.", "")
	}

	count, err := s.eventRepo.CountParticipants(ctx, eventID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao atualizar o evento.", err.Error())
	}
	if req.ParticipantsLimit != nil && int64(*req.ParticipantsLimit) < count {
		return nil, response.NewAppError(response.ErrCodeValidation,
			fmt.Sprintf("Não é possível definir o limite para %d porque o evento já tem %d participantes.",
				*req.ParticipantsLimit, count), "")
	}

	if req.CategoryID != event.CategoryID {
		category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeValidation, "Categoria inválida.", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao atualizar o evento.", err.Error())
		}
		event.CategoryID = category.ID
		event.Category = *category
	}

	event.Name = req.Name
	event.Description = req.Description
	event.Topics = req.Topics
	event.Street = req.Street
	event.Complement = req.Complement
	event.City = req.City
	event.State = req.State
	if req.Country != "" {
		event.Country = req.Country
	}
	event.ZipCode = req.ZipCode
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.ParticipantsLimit = req.ParticipantsLimit
	event.ImageURL = req.ImageURL

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao atualizar o evento.", err.Error())
	}

	return dto.NewEventResponse(event, count), nil
}

// CloseEvent freezes enrollment on an event that has not started yet.
// Existing participants keep their spots.
func (s *eventServiceImpl) CloseEvent(ctx context.Context, eventID, userID uuid.UUID) (*dto.LifecycleResult, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Você não tem permissão para gerenciar este evento.", "")
	}
	if event.Status == domain.EventStatusClosed {
		return s.lifecycleResult(ctx, event, "As inscrições deste evento já estão fechadas.", false)
	}
	if event.Status == domain.EventStatusCanceled || event.Status == domain.EventStatusFinished {
		return nil, response.NewAppError(response.ErrCodeConflict,
			"Não é possível fechar inscrições de um evento cancelado ou finalizado.", "")
	}
	if event.HasStarted(time.Now()) {
		return nil, response.NewAppError(response.ErrCodeConflict,
			"Não é possível fechar inscrições de um evento que já começou.", "")
	}

	if err := s.transition(ctx, event, domain.EventStatusClosed); err != nil {
		return nil, err
	}
	return s.lifecycleResult(ctx, event, "Inscrições fechadas com sucesso! Os participantes atuais mantêm suas vagas.", true)
}

// CancelEvent cancels an event. Canceling an already canceled event is an
// informational no-op.
func (s *eventServiceImpl) CancelEvent(ctx context.Context, eventID, userID uuid.UUID) (*dto.LifecycleResult, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Você não tem permissão para cancelar este evento.", "")
	}
	if event.Status == domain.EventStatusCanceled {
		return s.lifecycleResult(ctx, event, "Este evento já está cancelado.", false)
	}
	if event.Status == domain.EventStatusFinished {
		return nil, response.NewAppError(response.ErrCodeConflict, "Não é possível cancelar um evento finalizado.", "")
	}

	if err := s.transition(ctx, event, domain.EventStatusCanceled); err != nil {
		return nil, err
	}
	return s.lifecycleResult(ctx, event, "Evento cancelado com sucesso!", true)
}

// FinishEvent finishes an ended event after attendance was taken, unlocking
// certificates and blocking further edits.
func (s *eventServiceImpl) FinishEvent(ctx context.Context, eventID, userID uuid.UUID) (*dto.LifecycleResult, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Você não tem permissão para finalizar este evento.", "")
	}
	if event.Status == domain.EventStatusFinished {
		return s.lifecycleResult(ctx, event, "Este evento já está finalizado.", false)
	}
	if event.Status == domain.EventStatusCanceled {
		return nil, response.NewAppError(response.ErrCodeConflict, "Não é possível finalizar um evento cancelado.", "")
	}
	if !event.HasEnded(time.Now()) {
		return nil, response.NewAppError(response.ErrCodeConflict,
			"O evento ainda não terminou. Aguarde a data de término para finalizar.", "")
	}

	hasAttendance, err := s.participationRepo.HasAttendanceRecords(ctx, eventID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao finalizar o evento.", err.Error())
	}
	if !hasAttendance {
		return nil, response.NewAppError(response.ErrCodeConflict,
			"Não é possível finalizar o evento sem registrar a lista de presença.", "")
	}

	if err := s.transition(ctx, event, domain.EventStatusFinished); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.EventsFinishedTotal.Inc()
	}
	return s.lifecycleResult(ctx, event, "Evento finalizado com sucesso! As edições foram bloqueadas.", true)
}

// DeleteEvent removes a canceled event from the creator's listings
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, eventID, userID uuid.UUID) error {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.UserID != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Você não tem permissão para excluir este evento.", "")
	}
	if event.Status != domain.EventStatusCanceled {
		return response.NewAppError(response.ErrCodeConflict, "Apenas eventos cancelados podem ser excluídos.", "")
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Erro ao excluir o evento.", err.Error())
	}
	s.logger.Info("Event deleted", zap.String("event_id", eventID.String()))
	return nil
}

// AutoFinish finishes an event as a side effect of a read when its end date
// has passed and attendance was taken. Returns whether the event moved to
// FINISHED; all guard failures are silent no-ops.
func (s *eventServiceImpl) AutoFinish(ctx context.Context, event *domain.Event) (bool, error) {
	if event.Status == domain.EventStatusFinished || event.Status == domain.EventStatusCanceled {
		return false, nil
	}
	if !event.HasEnded(time.Now()) {
		return false, nil
	}

	hasAttendance, err := s.participationRepo.HasAttendanceRecords(ctx, event.ID)
	if err != nil {
		return false, err
	}
	if !hasAttendance {
		return false, nil
	}

	if err := s.eventRepo.UpdateStatus(ctx, event.ID, domain.EventStatusFinished); err != nil {
		return false, err
	}
	event.Status = domain.EventStatusFinished

	if s.metrics != nil {
		s.metrics.EventsFinishedTotal.Inc()
	}
	s.logger.Info("Event auto-finished", zap.String("event_id", event.ID.String()))
	return true, nil
}

// ListCategories lists the categories available for the event form
func (s *eventServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao listar as categorias.", err.Error())
	}
	responses := make([]*dto.CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = &dto.CategoryResponse{ID: category.ID, Name: category.Name}
	}
	return responses, nil
}

// findEvent loads an event or maps its absence to a not-found error
func (s *eventServiceImpl) findEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Não foi possível localizar o evento.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao buscar o evento.", err.Error())
	}
	return event, nil
}

// transition persists a status change and updates the in-memory event
func (s *eventServiceImpl) transition(ctx context.Context, event *domain.Event, status domain.EventStatus) error {
	if err := s.eventRepo.UpdateStatus(ctx, event.ID, status); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Erro ao atualizar o status do evento.", err.Error())
	}
	s.logger.Info("Event status changed",
		zap.String("event_id", event.ID.String()),
		zap.String("from", string(event.Status)),
		zap.String("to", string(status)),
	)
	event.Status = status
	return nil
}

// lifecycleResult assembles the response for a lifecycle operation
func (s *eventServiceImpl) lifecycleResult(ctx context.Context, event *domain.Event, notice string, changed bool) (*dto.LifecycleResult, error) {
	count, err := s.eventRepo.CountParticipants(ctx, event.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao buscar o evento.", err.Error())
	}
	return &dto.LifecycleResult{
		Event:   dto.NewEventResponse(event, count),
		Notice:  notice,
		Changed: changed,
	}, nil
}

// toEventResponses converts events to responses with participant counts
func (s *eventServiceImpl) toEventResponses(ctx context.Context, events []*domain.Event) ([]*dto.EventResponse, error) {
	responses := make([]*dto.EventResponse, len(events))
	for i, event := range events {
		count, err := s.eventRepo.CountParticipants(ctx, event.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao listar os eventos.", err.Error())
		}
		responses[i] = dto.NewEventResponse(event, count)
	}
	return responses, nil
}
