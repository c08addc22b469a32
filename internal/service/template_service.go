package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/repository"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
)

// placeholderPattern matches {{ name }} tokens with optional inner spaces
var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-z_]+)\s*\}\}`)

// previewSamples holds the sample values substituted into template previews
var previewSamples = map[string]string{
	"first_name":     "Maria",
	"last_name":      "Silva",
	"full_name":      "Maria Silva",
	"event_name":     "Workshop de Inteligência Artificial",
	"event_city":     "São Paulo",
	"event_state":    "SP",
	"event_duration": "8 horas",
	"start_date":     "12 de março de 2026",
	"end_date":       "12 de março de 2026",
	"issue_date":     "15 de março de 2026",
}

// TemplateService defines the interface for certificate template management
type TemplateService interface {
	CreateTemplate(ctx context.Context, userID uuid.UUID, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	GetTemplate(ctx context.Context, id, userID uuid.UUID) (*dto.TemplateResponse, error)
	ListTemplates(ctx context.Context, userID uuid.UUID) ([]*dto.TemplateResponse, error)
	UpdateTemplate(ctx context.Context, id, userID uuid.UUID, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id, userID uuid.UUID) error
	DuplicateTemplate(ctx context.Context, id, userID uuid.UUID) (*dto.TemplateResponse, error)
	QuickPreview(ctx context.Context, req *dto.QuickPreviewRequest) (*dto.QuickPreviewResponse, error)
}

// templateServiceImpl is the implementation of TemplateService
type templateServiceImpl struct {
	templateRepo repository.CertificateTemplateRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new instance of TemplateService
func NewTemplateService(templateRepo repository.CertificateTemplateRepository, logger *zap.Logger) TemplateService {
	return &templateServiceImpl{templateRepo: templateRepo, logger: logger}
}

// CreateTemplate saves a new certificate template for the caller
func (s *templateServiceImpl) CreateTemplate(ctx context.Context, userID uuid.UUID, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	template := &domain.CertificateTemplate{
		Name:        req.Name,
		UserID:      userID,
		HTMLContent: req.HTMLContent,
		Width:       req.Width,
		Height:      req.Height,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao criar o modelo de certificado.", err.Error())
	}
	s.logger.Info("Certificate template created",
		zap.String("template_id", template.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return dto.NewTemplateResponse(template), nil
}

// GetTemplate returns one of the caller's templates
func (s *templateServiceImpl) GetTemplate(ctx context.Context, id, userID uuid.UUID) (*dto.TemplateResponse, error) {
	template, err := s.findTemplate(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewTemplateResponse(template), nil
}

// ListTemplates returns the caller's templates, most recent first
func (s *templateServiceImpl) ListTemplates(ctx context.Context, userID uuid.UUID) ([]*dto.TemplateResponse, error) {
	templates, err := s.templateRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao listar os modelos de certificado.", err.Error())
	}
	responses := make([]*dto.TemplateResponse, len(templates))
	for i, template := range templates {
		responses[i] = dto.NewTemplateResponse(template)
	}
	return responses, nil
}

// UpdateTemplate edits one of the caller's templates
func (s *templateServiceImpl) UpdateTemplate(ctx context.Context, id, userID uuid.UUID, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	template, err := s.findTemplate(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	template.Name = req.Name
	template.HTMLContent = req.HTMLContent
	template.Width = req.Width
	template.Height = req.Height

	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao atualizar o modelo de certificado.", err.Error())
	}
	return dto.NewTemplateResponse(template), nil
}

// DeleteTemplate removes one of the caller's templates
func (s *templateServiceImpl) DeleteTemplate(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.findTemplate(ctx, id, userID); err != nil {
		return err
	}
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Erro ao excluir o modelo de certificado.", err.Error())
	}
	s.logger.Info("Certificate template deleted", zap.String("template_id", id.String()))
	return nil
}

// DuplicateTemplate clones one of the caller's templates under a copy name
func (s *templateServiceImpl) DuplicateTemplate(ctx context.Context, id, userID uuid.UUID) (*dto.TemplateResponse, error) {
	original, err := s.findTemplate(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	clone := &domain.CertificateTemplate{
		Name:        original.Name + " (Cópia)",
		UserID:      userID,
		HTMLContent: original.HTMLContent,
		Width:       original.Width,
		Height:      original.Height,
	}
	if err := s.templateRepo.Create(ctx, clone); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao duplicar o modelo de certificado.", err.Error())
	}
	return dto.NewTemplateResponse(clone), nil
}

// QuickPreview substitutes sample values into the template markup so the
// editor can render it without persisting anything
func (s *templateServiceImpl) QuickPreview(_ context.Context, req *dto.QuickPreviewRequest) (*dto.QuickPreviewResponse, error) {
	rendered := placeholderPattern.ReplaceAllStringFunc(req.HTMLContent, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := previewSamples[key]; ok {
			return value
		}
		return match
	})

	width := req.Width
	if width == 0 {
		width = 842
	}
	height := req.Height
	if height == 0 {
		height = 595
	}

	return &dto.QuickPreviewResponse{
		PreviewContent: rendered,
		Width:          width,
		Height:         height,
	}, nil
}

// findTemplate loads a template scoped to its owner, mapping absence (and
// other owners' templates) to a not-found error
func (s *templateServiceImpl) findTemplate(ctx context.Context, id, userID uuid.UUID) (*domain.CertificateTemplate, error) {
	template, err := s.templateRepo.FindByIDAndOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Não foi possível localizar o modelo de certificado.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Erro ao buscar o modelo de certificado.", err.Error())
	}
	return template, nil
}
