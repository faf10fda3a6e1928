package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/application/settlement"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/internal/domain/repository"
	infraRepo "github.com/hisably/pos-api/internal/infrastructure/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/pagination"
	"github.com/sirupsen/logrus"
)

// TransferService handles stock movements between stores
type TransferService struct {
	tx           *infraRepo.TxManager
	engine       *settlement.Engine
	transferRepo repository.StockTransferRepository
	itemRepo     repository.StockTransferItemRepository
	storeRepo    repository.StoreRepository
	productRepo  repository.ProductRepository
	unitRepo     repository.UnitRepository
	stockRepo    repository.StockRepository
}

// NewTransferService creates a new transfer service
func NewTransferService(
	tx *infraRepo.TxManager,
	engine *settlement.Engine,
	transferRepo repository.StockTransferRepository,
	itemRepo repository.StockTransferItemRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.UnitRepository,
	stockRepo repository.StockRepository,
) *TransferService {
	return &TransferService{
		tx:           tx,
		engine:       engine,
		transferRepo: transferRepo,
		itemRepo:     itemRepo,
		storeRepo:    storeRepo,
		productRepo:  productRepo,
		unitRepo:     unitRepo,
		stockRepo:    stockRepo,
	}
}

// TransferItemInput represents one line of a transfer request
type TransferItemInput struct {
	ProductID uuid.UUID
	UnitID    *uuid.UUID
	Quantity  float64
}

// CreateTransferInput represents the create transfer input
type CreateTransferInput struct {
	EmployeeID   uuid.UUID
	FromStoreID  uuid.UUID
	ToStoreID    uuid.UUID
	TransferDate time.Time
	Notes        *string
	Items        []TransferItemInput
}

func (s *TransferService) buildLines(ctx context.Context, items []TransferItemInput) ([]entity.StockTransferItem, error) {
	if len(items) == 0 {
		return nil, apperror.NewBadRequestError("Transfer must have at least one item")
	}

	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	lines := make([]entity.StockTransferItem, 0, len(items))
	for _, item := range items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}

		baseQuantity := item.Quantity
		if item.UnitID != nil && (product.BaseUnitID == nil || *item.UnitID != *product.BaseUnitID) {
			unit, err := s.unitRepo.GetByID(ctx, *item.UnitID)
			if err != nil {
				return nil, err
			}
			if unit == nil {
				return nil, apperror.NewNotFoundError("Unit")
			}
			baseQuantity = item.Quantity * unit.Rate
		}

		lines = append(lines, entity.StockTransferItem{
			ProductID:    item.ProductID,
			UnitID:       item.UnitID,
			Quantity:     item.Quantity,
			BaseQuantity: baseQuantity,
		})
	}

	return lines, nil
}

// CreateTransfer creates a transfer and moves the stock
func (s *TransferService) CreateTransfer(ctx context.Context, input *CreateTransferInput) (*entity.StockTransfer, error) {
	if input.FromStoreID == input.ToStoreID {
		return nil, apperror.NewBadRequestError("Source and destination stores must differ")
	}

	for _, id := range []uuid.UUID{input.FromStoreID, input.ToStoreID} {
		store, err := s.storeRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, apperror.NewNotFoundError("Store")
		}
	}

	lines, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	// Source stock is checked up front so an obviously bad request
	// fails before a document row is written. The settlement runs in
	// the same transaction, so a concurrent drain still rolls back.
	for _, line := range lines {
		available, err := s.stockRepo.Quantity(ctx, input.FromStoreID, line.ProductID)
		if err != nil {
			return nil, err
		}
		if available < line.BaseQuantity {
			return nil, apperror.ErrInsufficientStock
		}
	}

	transferDate := input.TransferDate
	if transferDate.IsZero() {
		transferDate = time.Now()
	}

	var transfer *entity.StockTransfer
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		referenceNo, err := s.transferRepo.NextReferenceNo(ctx, transferDate)
		if err != nil {
			return err
		}

		transfer = &entity.StockTransfer{
			ReferenceNo:  referenceNo,
			EmployeeID:   input.EmployeeID,
			FromStoreID:  input.FromStoreID,
			ToStoreID:    input.ToStoreID,
			TransferDate: transferDate,
			Status:       enum.DocumentStatusActive,
			Notes:        input.Notes,
		}
		transfer.Touch()

		if err := s.transferRepo.Create(ctx, transfer); err != nil {
			return err
		}

		for i := range lines {
			lines[i].TransferID = transfer.ID
		}
		if err := s.itemRepo.CreateBatch(ctx, lines); err != nil {
			return err
		}

		transfer.Items = lines
		return s.engine.ApplyTransfer(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"reference_no": transfer.ReferenceNo,
		"from_store":   input.FromStoreID,
		"to_store":     input.ToStoreID,
	}).Info("stock transfer applied")

	return s.transferRepo.GetWithDetails(ctx, transfer.ID)
}

// GetTransfer retrieves a transfer by ID
func (s *TransferService) GetTransfer(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	transfer, err := s.transferRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, apperror.NewNotFoundError("Transfer")
	}
	return transfer, nil
}

// ListTransfers lists transfers with filtering
func (s *TransferService) ListTransfers(ctx context.Context, params *repository.StockTransferFilterParams) (*pagination.PaginatedResult[entity.StockTransfer], error) {
	transfers, total, err := s.transferRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transfers, pag), nil
}

// RevertTransfer moves the stock back and marks the transfer reverted
func (s *TransferService) RevertTransfer(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	transfer, err := s.transferRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, apperror.NewNotFoundError("Transfer")
	}
	if transfer.Status == enum.DocumentStatusReverted {
		return nil, apperror.ErrAlreadyReverted
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.engine.RevertTransfer(ctx, transfer); err != nil {
			return err
		}
		return s.transferRepo.UpdateStatus(ctx, id, enum.DocumentStatusReverted)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("reference_no", transfer.ReferenceNo).Info("stock transfer reverted")

	transfer.Status = enum.DocumentStatusReverted
	return transfer, nil
}
