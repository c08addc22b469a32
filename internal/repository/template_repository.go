package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// CertificateTemplateRepository defines the interface for template data access
type CertificateTemplateRepository interface {
	Create(ctx context.Context, template *domain.CertificateTemplate) error
	FindByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*domain.CertificateTemplate, error)
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.CertificateTemplate, error)
	Update(ctx context.Context, template *domain.CertificateTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// templateRepositoryImpl is the GORM implementation of CertificateTemplateRepository
type templateRepositoryImpl struct {
	db *gorm.DB
}

// NewCertificateTemplateRepository creates a new instance of CertificateTemplateRepository
func NewCertificateTemplateRepository(db *gorm.DB) CertificateTemplateRepository {
	return &templateRepositoryImpl{db: db}
}

// Create creates a new certificate template
func (r *templateRepositoryImpl) Create(ctx context.Context, template *domain.CertificateTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// FindByIDAndOwner finds a template by ID scoped to its owner. Ownership is
// part of the lookup so other teachers' templates behave as not found.
func (r *templateRepositoryImpl) FindByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*domain.CertificateTemplate, error) {
	var template domain.CertificateTemplate
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByOwner lists a teacher's templates, newest first
func (r *templateRepositoryImpl) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.CertificateTemplate, error) {
	var templates []*domain.CertificateTemplate
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Update persists all fields of a template
func (r *templateRepositoryImpl) Update(ctx context.Context, template *domain.CertificateTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// Delete soft deletes a template, stamping both soft-delete fields
func (r *templateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(r.db.WithContext(ctx), &domain.CertificateTemplate{}, id)
}
