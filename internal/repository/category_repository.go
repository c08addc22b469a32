package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	GetOrCreate(ctx context.Context, name string) (*domain.Category, error)
}

// categoryRepositoryImpl is the GORM implementation of CategoryRepository
type categoryRepositoryImpl struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepositoryImpl{db: db}
}

// FindByID finds a category by ID
func (r *categoryRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its normalized name
func (r *categoryRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).
		Where("name = ?", domain.NormalizeCategoryName(name)).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAll lists all categories ordered by name
func (r *categoryRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetOrCreate finds a category by name, creating it when missing.
// The name is normalized before persistence.
func (r *categoryRepositoryImpl) GetOrCreate(ctx context.Context, name string) (*domain.Category, error) {
	category := domain.Category{Name: domain.NormalizeCategoryName(name)}
	if err := r.db.WithContext(ctx).
		Where("name = ?", category.Name).
		FirstOrCreate(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
