package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/pagination"
	"github.com/sirupsen/logrus"
)

// SupplierService handles supplier management and debt payments
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
	Type    enum.SupplierType
}

// UpdateSupplierInput represents the update supplier input
type UpdateSupplierInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Type    *enum.SupplierType
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	supplierType := input.Type
	if supplierType == "" {
		supplierType = enum.SupplierTypeDistributor
	}
	if !supplierType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown supplier type")
	}

	supplier := &entity.Supplier{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Type:    supplierType,
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// UpdateSupplier updates a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, apperror.NewBadRequestError("Unknown supplier type")
		}
		supplier.Type = *input.Type
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier soft deletes a supplier. Suppliers the business still
// owes cannot be removed.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}
	if supplier.Debt != 0 {
		return apperror.NewBadRequestError("Supplier has an outstanding balance")
	}
	return s.supplierRepo.Delete(ctx, id)
}

// ListSuppliers lists suppliers with filtering
func (s *SupplierService) ListSuppliers(ctx context.Context, params *repository.SupplierFilterParams) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

// RecordPayment reduces the business's debt towards a supplier
func (s *SupplierService) RecordPayment(ctx context.Context, id uuid.UUID, amount float64) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	amountCents := int64(amount * 100)
	if amountCents <= 0 {
		return nil, apperror.NewBadRequestError("Payment must be positive")
	}

	if err := s.supplierRepo.AdjustDebt(ctx, id, -amountCents); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"supplier_id": id,
		"amount":      amountCents,
	}).Info("supplier payment recorded")

	return s.supplierRepo.GetByID(ctx, id)
}
