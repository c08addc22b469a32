package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/metrics"
	"github.com/GabrielHenriqueHE/sinapse/internal/repository"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
)

// EnrollmentService defines the interface for enrollment and attendance logic
type EnrollmentService interface {
	Enroll(ctx context.Context, eventID, userID uuid.UUID) (*dto.EnrollmentResult, error)
	CancelEnrollment(ctx context.Context, eventID, userID uuid.UUID) (*dto.EnrollmentResult, error)
	GetAttendance(ctx context.Context, eventID, userID uuid.UUID) (*dto.AttendanceListResponse, error)
	UpdateAttendance(ctx context.Context, eventID, userID uuid.UUID, req *dto.UpdateAttendanceRequest) (*dto.ParticipationResponse, error)
}

// enrollmentServiceImpl is the implementation of EnrollmentService
type enrollmentServiceImpl struct {
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	autoFinisher      AutoFinisher
	metrics           *metrics.Metrics
	logger            *zap.Logger
}

// NewEnrollmentService creates a new instance of EnrollmentService
func NewEnrollmentService(
	eventRepo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	autoFinisher AutoFinisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		autoFinisher:      autoFinisher,
		metrics:           m,
		logger:            logger,
	}
}

// Enroll registers a student in an open event. Capacity and duplicates are
// enforced inside the repository transaction, so concurrent enrollments on
// the last spot cannot overbook the event.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, eventID, userID uuid.UUID) (*dto.EnrollmentResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Não foi possível localizar o evento.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao realizar a inscrição.", err.Error())
	}
	if event.UserID == userID {
		return nil, response.NewAppError(response.ErrCodeConflict,
			"O criador do evento não pode se inscrever como participante.", "")
	}

	participation, err := s.participationRepo.Enroll(ctx, eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyEnrolled):
			existing, findErr := s.participationRepo.FindByEventAndUser(ctx, eventID, userID)
			if findErr != nil {
				return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao realizar a inscrição.", findErr.Error())
			}
			return &dto.EnrollmentResult{
				Participation: dto.NewParticipationResponse(existing),
				Notice:        "Você já está inscrito neste evento.",
			}, nil
		case errors.Is(err, repository.ErrEventFull):
			return nil, response.NewAppError(response.ErrCodeConflict, "O evento está lotado.", "")
		case errors.Is(err, repository.ErrEventNotOpen):
			return nil, response.NewAppError(response.ErrCodeConflict, "Este evento não está aceitando inscrições.", "")
		default:
			return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao realizar a inscrição.", err.Error())
		}
	}

	if s.metrics != nil {
		s.metrics.EnrollmentsTotal.Inc()
	}
	s.logger.Info("User enrolled",
		zap.String("event_id", eventID.String()),
		zap.String("user_id", userID.String()),
	)

	return &dto.EnrollmentResult{
		Participation: dto.NewParticipationResponse(participation),
		Notice:        "Inscrição realizada com sucesso!",
		Created:       true,
	}, nil
}

// CancelEnrollment removes the caller's enrollment, freeing the spot for
// someone else. Canceling without an enrollment is an informational no-op.
func (s *enrollmentServiceImpl) CancelEnrollment(ctx context.Context, eventID, userID uuid.UUID) (*dto.EnrollmentResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Não foi possível localizar o evento.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao cancelar a inscrição.", err.Error())
	}
	if event.Status == domain.EventStatusFinished {
		return nil, response.NewAppError(response.ErrCodeConflict,
			"Não é possível cancelar a inscrição em um evento finalizado.", "")
	}

	if _, err := s.participationRepo.FindByEventAndUser(ctx, eventID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.EnrollmentResult{Notice: "Você não estava inscrito neste evento."}, nil
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao cancelar a inscrição.", err.Error())
	}

	if err := s.participationRepo.Remove(ctx, eventID, userID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao cancelar a inscrição.", err.Error())
	}

	s.logger.Info("Enrollment canceled",
		zap.String("event_id", eventID.String()),
		zap.String("user_id", userID.String()),
	)

	return &dto.EnrollmentResult{Notice: "Inscrição cancelada com sucesso."}, nil
}

// GetAttendance returns the attendance sheet for the event creator. Ended
// events with attendance already taken are finished on the way out.
func (s *enrollmentServiceImpl) GetAttendance(ctx context.Context, eventID, userID uuid.UUID) (*dto.AttendanceListResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Não foi possível localizar o evento.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao buscar a lista de presença.", err.Error())
	}
	if event.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden,
			"Você não tem permissão para acessar a lista de presença deste evento.", "")
	}

	if s.autoFinisher != nil {
		if _, err := s.autoFinisher.AutoFinish(ctx, event); err != nil {
			s.logger.Warn("Auto-finish failed", zap.String("event_id", eventID.String()), zap.Error(err))
		}
	}

	participations, err := s.participationRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao buscar a lista de presença.", err.Error())
	}

	participants := make([]*dto.ParticipationResponse, len(participations))
	presentCount := 0
	for i, p := range participations {
		participants[i] = dto.NewParticipationResponse(p)
		if p.Status == domain.ParticipationStatusPresent {
			presentCount++
		}
	}

	return &dto.AttendanceListResponse{
		Event:        dto.NewEventResponse(event, int64(len(participations))),
		Participants: participants,
		PresentCount: presentCount,
		TotalCount:   len(participations),
	}, nil
}

// UpdateAttendance marks a participant present or absent. Attendance can only
// be recorded once the event has started, and marking someone present stamps
// the time of the check-in.
func (s *enrollmentServiceImpl) UpdateAttendance(ctx context.Context, eventID, userID uuid.UUID, req *dto.UpdateAttendanceRequest) (*dto.ParticipationResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Não foi possível localizar o evento.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao registrar a presença.", err.Error())
	}
	if event.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden,
			"Você não tem permissão para registrar presença neste evento.", "")
	}
	if event.Status == domain.EventStatusCanceled {
		return nil, response.NewAppError(response.ErrCodeConflict,
			"Não é possível registrar presença em um evento cancelado.", "")
	}
	now := time.Now()
	if !event.HasStarted(now) {
		return nil, response.NewAppError(response.ErrCodeConflict,
			"A lista de presença só pode ser preenchida após o início do evento.", "")
	}

	participation, err := s.participationRepo.FindByID(ctx, req.ParticipationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Não foi possível localizar a inscrição.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao registrar a presença.", err.Error())
	}
	if participation.EventID != eventID {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Não foi possível localizar a inscrição.", "")
	}

	switch domain.ParticipationStatus(req.Status) {
	case domain.ParticipationStatusPresent:
		participation.Status = domain.ParticipationStatusPresent
		participation.AttendedAt = &now
	case domain.ParticipationStatusAbsent:
		participation.Status = domain.ParticipationStatusAbsent
		participation.AttendedAt = nil
	default:
		return nil, response.NewAppError(response.ErrCodeValidation, "Status de presença inválido.", "")
	}

	if err := s.participationRepo.Update(ctx, participation); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao registrar a presença.", err.Error())
	}

	if s.autoFinisher != nil {
		if _, err := s.autoFinisher.AutoFinish(ctx, event); err != nil {
			s.logger.Warn("Auto-finish failed", zap.String("event_id", eventID.String()), zap.Error(err))
		}
	}

	return dto.NewParticipationResponse(participation), nil
}
