package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/pagination"
)

// ProductService handles product management and stock overview
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	stockRepo    repository.StockRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	stockRepo repository.StockRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		stockRepo:    stockRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	Code          string
	CategoryID    *uuid.UUID
	BaseUnitID    *uuid.UUID
	QuantityAlert float64
	BuyingPrice   float64
	SellingPrice  float64
	Notes         *string
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name          *string
	Code          *string
	CategoryID    *uuid.UUID
	BaseUnitID    *uuid.UUID
	QuantityAlert *float64
	BuyingPrice   *float64
	SellingPrice  *float64
	Notes         *string
}

func (s *ProductService) checkReferences(ctx context.Context, categoryID, baseUnitID *uuid.UUID) error {
	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return apperror.NewNotFoundError("Category")
		}
	}
	if baseUnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *baseUnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return apperror.NewNotFoundError("Unit")
		}
	}
	return nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	existing, err := s.productRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this code already exists")
	}

	if err := s.checkReferences(ctx, input.CategoryID, input.BaseUnitID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:          input.Name,
		Code:          input.Code,
		CategoryID:    input.CategoryID,
		BaseUnitID:    input.BaseUnitID,
		QuantityAlert: input.QuantityAlert,
		BuyingPrice:   int64(input.BuyingPrice * 100),
		SellingPrice:  int64(input.SellingPrice * 100),
		Notes:         input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Code != nil && *input.Code != product.Code {
		existing, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A product with this code already exists")
		}
		product.Code = *input.Code
	}

	if err := s.checkReferences(ctx, input.CategoryID, input.BaseUnitID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.BaseUnitID != nil {
		product.BaseUnitID = input.BaseUnitID
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.BuyingPrice != nil {
		product.BuyingPrice = int64(*input.BuyingPrice * 100)
	}
	if input.SellingPrice != nil {
		product.SellingPrice = int64(*input.SellingPrice * 100)
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct soft deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListProductsWithCursor lists products using cursor-based pagination
func (s *ProductService) ListProductsWithCursor(ctx context.Context, params *repository.ProductCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Product], error) {
	params.Cursor.Validate()

	products, err := s.productRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(products, params.Cursor.Limit,
		func(p entity.Product) string { return p.ID.String() },
		func(p entity.Product) time.Time { return p.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// ProductStock describes a product's stock position across stores
type ProductStock struct {
	Total  float64             `json:"total"`
	Levels []entity.StockLevel `json:"levels"`
}

// GetStock returns a product's stock levels per store plus the total
func (s *ProductService) GetStock(ctx context.Context, productID uuid.UUID) (*ProductStock, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	levels, err := s.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.TotalQuantity(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ProductStock{Total: total, Levels: levels}, nil
}

// SetStock overwrites a stock level after a manual count
func (s *ProductService) SetStock(ctx context.Context, storeID, productID uuid.UUID, quantity float64) error {
	if quantity < 0 {
		return apperror.NewBadRequestError("Stock count cannot be negative")
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.stockRepo.Set(ctx, storeID, productID, quantity)
}

// LowStock lists stock levels at or below their product's alert level
func (s *ProductService) LowStock(ctx context.Context, storeID *uuid.UUID) ([]entity.StockLevel, error) {
	return s.stockRepo.LowStock(ctx, storeID)
}
