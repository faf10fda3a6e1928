package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/pagination"
)

// StoreService handles store management
type StoreService struct {
	storeRepo repository.StoreRepository
	stockRepo repository.StockRepository
}

// NewStoreService creates a new store service
func NewStoreService(storeRepo repository.StoreRepository, stockRepo repository.StockRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, stockRepo: stockRepo}
}

// CreateStoreInput represents the create store input
type CreateStoreInput struct {
	Name    string
	Phone   *string
	Address *string
}

// UpdateStoreInput represents the update store input
type UpdateStoreInput struct {
	Name     *string
	Phone    *string
	Address  *string
	IsActive *bool
}

// CreateStore creates a new store
func (s *StoreService) CreateStore(ctx context.Context, input *CreateStoreInput) (*entity.Store, error) {
	store := &entity.Store{
		Name:     input.Name,
		Phone:    input.Phone,
		Address:  input.Address,
		IsActive: true,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	return store, nil
}

// GetStore retrieves a store by ID
func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return store, nil
}

// UpdateStore updates a store
func (s *StoreService) UpdateStore(ctx context.Context, id uuid.UUID, input *UpdateStoreInput) (*entity.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Phone != nil {
		store.Phone = input.Phone
	}
	if input.Address != nil {
		store.Address = input.Address
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}

	return store, nil
}

// DeleteStore soft deletes a store
func (s *StoreService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if store == nil {
		return apperror.NewNotFoundError("Store")
	}
	return s.storeRepo.Delete(ctx, id)
}

// ListStores lists stores with optional name search
func (s *StoreService) ListStores(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Store], error) {
	stores, total, err := s.storeRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(stores, pag), nil
}

// ListStock lists a store's stock levels
func (s *StoreService) ListStock(ctx context.Context, storeID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.StockLevel], error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	levels, total, err := s.stockRepo.ListByStore(ctx, storeID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(levels, pag), nil
}
