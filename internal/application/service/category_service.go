package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/pagination"
	"github.com/hisably/pos-api/pkg/utils"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	slug := utils.Slugify(name)

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	category := &entity.Category{
		Name: name,
		Slug: slug,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories with optional name search
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	newSlug := utils.Slugify(name)
	if newSlug != category.Slug {
		existing, err := s.categoryRepo.GetBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
		category.Slug = newSlug
	}

	category.Name = name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory soft deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// UnitService handles unit-related operations
type UnitService struct {
	unitRepo repository.UnitRepository
}

// NewUnitService creates a new unit service
func NewUnitService(unitRepo repository.UnitRepository) *UnitService {
	return &UnitService{unitRepo: unitRepo}
}

// CreateUnitInput represents the create unit input
type CreateUnitInput struct {
	Name      string
	ShortCode string
	Rate      float64
}

// CreateUnit creates a new unit of measurement
func (s *UnitService) CreateUnit(ctx context.Context, input *CreateUnitInput) (*entity.Unit, error) {
	rate := input.Rate
	if rate == 0 {
		rate = 1
	}
	if rate < 0 {
		return nil, apperror.NewBadRequestError("Conversion rate must be positive")
	}

	unit := &entity.Unit{
		Name:      input.Name,
		ShortCode: input.ShortCode,
		Rate:      rate,
	}

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// GetUnit retrieves a unit by ID
func (s *UnitService) GetUnit(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}
	return unit, nil
}

// ListUnits lists units with optional name search
func (s *UnitService) ListUnits(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Unit], error) {
	units, total, err := s.unitRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(units, pag), nil
}

// UpdateUnitInput represents the update unit input
type UpdateUnitInput struct {
	Name      *string
	ShortCode *string
	Rate      *float64
}

// UpdateUnit updates a unit. Changing the conversion rate only affects
// documents settled after the change; existing lines keep the base
// quantities they were converted with.
func (s *UnitService) UpdateUnit(ctx context.Context, id uuid.UUID, input *UpdateUnitInput) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}

	if input.Name != nil {
		unit.Name = *input.Name
	}
	if input.ShortCode != nil {
		unit.ShortCode = *input.ShortCode
	}
	if input.Rate != nil {
		if *input.Rate <= 0 {
			return nil, apperror.NewBadRequestError("Conversion rate must be positive")
		}
		unit.Rate = *input.Rate
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// DeleteUnit soft deletes a unit
func (s *UnitService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil {
		return apperror.NewNotFoundError("Unit")
	}

	return s.unitRepo.Delete(ctx, id)
}
