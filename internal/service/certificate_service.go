package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/certificate"
	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/metrics"
	"github.com/GabrielHenriqueHE/sinapse/internal/repository"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
)

// CertificateDocument is a rendered certificate ready for download
type CertificateDocument struct {
	Filename string
	Content  []byte
}

// CertificateService defines the interface for certificate issuance
type CertificateService interface {
	ListCertificates(ctx context.Context, userID uuid.UUID) ([]*dto.CertificateEligibilityResponse, error)
	GenerateCertificate(ctx context.Context, eventID, userID uuid.UUID) (*CertificateDocument, error)
}

// certificateServiceImpl is the implementation of CertificateService
type certificateServiceImpl struct {
	userRepo          repository.UserRepository
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	autoFinisher      AutoFinisher
	metrics           *metrics.Metrics
	logger            *zap.Logger
}

// NewCertificateService creates a new instance of CertificateService
func NewCertificateService(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	autoFinisher AutoFinisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) CertificateService {
	return &certificateServiceImpl{
		userRepo:          userRepo,
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		autoFinisher:      autoFinisher,
		metrics:           m,
		logger:            logger,
	}
}

// ListCertificates returns the caller's participations eligible for a
// certificate. Ended events the caller attended are finished first, so a
// certificate that only waits on the automatic transition shows up here
// without the organizer touching the event again.
func (s *certificateServiceImpl) ListCertificates(ctx context.Context, userID uuid.UUID) ([]*dto.CertificateEligibilityResponse, error) {
	if err := s.finishEndedEvents(ctx, userID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao listar os certificados.", err.Error())
	}

	eligible, err := s.participationRepo.FindEligibleByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao listar os certificados.", err.Error())
	}

	responses := make([]*dto.CertificateEligibilityResponse, len(eligible))
	for i, p := range eligible {
		responses[i] = dto.NewCertificateEligibilityResponse(p)
	}
	return responses, nil
}

// GenerateCertificate renders the PDF certificate for the caller's
// participation in a finished event. The caller must have been marked
// present; an ended event that still has a pending status is finished on
// the fly when its attendance was already taken.
func (s *certificateServiceImpl) GenerateCertificate(ctx context.Context, eventID, userID uuid.UUID) (*CertificateDocument, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Não foi possível localizar o evento.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao emitir o certificado.", err.Error())
	}

	participation, err := s.participationRepo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeForbidden,
				"Você não participou deste evento.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao emitir o certificado.", err.Error())
	}
	if participation.Status != domain.ParticipationStatusPresent {
		return nil, response.NewAppError(response.ErrCodeForbidden,
			"O certificado está disponível apenas para participantes com presença confirmada.", "")
	}

	if event.Status != domain.EventStatusFinished && s.autoFinisher != nil {
		if _, err := s.autoFinisher.AutoFinish(ctx, event); err != nil {
			s.logger.Warn("Auto-finish failed", zap.String("event_id", eventID.String()), zap.Error(err))
		}
	}
	if event.Status != domain.EventStatusFinished {
		return nil, response.NewAppError(response.ErrCodeConflict,
			"O certificado só pode ser emitido após a finalização do evento.", "")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao emitir o certificado.", err.Error())
	}

	data := &certificate.Data{User: user, Event: event, IssuedAt: time.Now()}
	content, err := certificate.Render(data)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao emitir o certificado.", err.Error())
	}

	if s.metrics != nil {
		s.metrics.CertificatesIssuedTotal.Inc()
	}
	s.logger.Info("Certificate issued",
		zap.String("event_id", eventID.String()),
		zap.String("user_id", userID.String()),
	)

	return &CertificateDocument{
		Filename: certificate.Filename(data),
		Content:  content,
	}, nil
}

// finishEndedEvents runs the automatic finish over the ended events the
// user is enrolled in
func (s *certificateServiceImpl) finishEndedEvents(ctx context.Context, userID uuid.UUID) error {
	participations, err := s.participationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if s.autoFinisher == nil {
		return nil
	}
	now := time.Now()
	for _, p := range participations {
		if p.Event.ID == uuid.Nil || !p.Event.HasEnded(now) {
			continue
		}
		if _, err := s.autoFinisher.AutoFinish(ctx, &p.Event); err != nil {
			s.logger.Warn("Auto-finish failed",
				zap.String("event_id", p.Event.ID.String()), zap.Error(err))
		}
	}
	return nil
}
