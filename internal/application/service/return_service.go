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

// ReturnService handles sales returns
type ReturnService struct {
	tx           *infraRepo.TxManager
	engine       *settlement.Engine
	returnRepo   repository.SalesReturnRepository
	itemRepo     repository.SalesReturnItemRepository
	orderRepo    repository.SalesOrderRepository
	productRepo  repository.ProductRepository
	unitRepo     repository.UnitRepository
	clientRepo   repository.ClientRepository
	settingsRepo repository.SettingsRepository
}

// NewReturnService creates a new return service
func NewReturnService(
	tx *infraRepo.TxManager,
	engine *settlement.Engine,
	returnRepo repository.SalesReturnRepository,
	itemRepo repository.SalesReturnItemRepository,
	orderRepo repository.SalesOrderRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.UnitRepository,
	clientRepo repository.ClientRepository,
	settingsRepo repository.SettingsRepository,
) *ReturnService {
	return &ReturnService{
		tx:           tx,
		engine:       engine,
		returnRepo:   returnRepo,
		itemRepo:     itemRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		unitRepo:     unitRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
	}
}

// CreateReturnInput represents the create return input
type CreateReturnInput struct {
	EmployeeID  uuid.UUID
	ClientID    *uuid.UUID
	OrderID     *uuid.UUID
	ReturnDate  time.Time
	PaymentType enum.PaymentType
	AmountPaid  float64
	Notes       *string
	Items       []OrderItemInput
}

// CreateReturn creates a sales return and settles it
func (s *ReturnService) CreateReturn(ctx context.Context, input *CreateReturnInput) (*entity.SalesReturn, error) {
	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
	}

	if input.OrderID != nil {
		order, err := s.orderRepo.GetByID(ctx, *input.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NewNotFoundError("Order")
		}
		if order.Status == enum.DocumentStatusReverted {
			return nil, apperror.NewBadRequestError("Cannot return against a reverted order")
		}
	}

	if !input.PaymentType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown payment type")
	}
	if input.PaymentType.IsDeferred() && input.ClientID == nil {
		return nil, apperror.NewBadRequestError("Deferred return requires a client")
	}

	lines, total, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	paidCents := int64(input.AmountPaid * 100)
	if paidCents > total {
		paidCents = total
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	rate := 0.0
	if settings != nil {
		rate = settings.ReturnCommissionRate
	}

	returnDate := input.ReturnDate
	if returnDate.IsZero() {
		returnDate = time.Now()
	}

	var ret *entity.SalesReturn
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		returnNo, err := s.returnRepo.NextReturnNo(ctx, returnDate)
		if err != nil {
			return err
		}

		ret = &entity.SalesReturn{
			ReturnNo:        returnNo,
			EmployeeID:      input.EmployeeID,
			ClientID:        input.ClientID,
			OrderID:         input.OrderID,
			ReturnDate:      returnDate,
			Status:          enum.DocumentStatusActive,
			PaymentType:     input.PaymentType,
			TotalAmount:     total,
			AmountPaid:      paidCents,
			AmountRemaining: total - paidCents,
			Notes:           input.Notes,
		}
		ret.Touch()

		if err := s.returnRepo.Create(ctx, ret); err != nil {
			return err
		}

		for i := range lines {
			lines[i].ReturnID = ret.ID
		}
		if err := s.itemRepo.CreateBatch(ctx, lines); err != nil {
			return err
		}

		ret.Items = lines
		return s.engine.ProcessReturn(ctx, ret, rate)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"return_no":   ret.ReturnNo,
		"employee_id": input.EmployeeID,
		"total":       total,
	}).Info("sales return settled")

	return s.returnRepo.GetWithDetails(ctx, ret.ID)
}

// buildLines validates return items and computes totals, reusing the
// same unit conversion rules as orders.
func (s *ReturnService) buildLines(ctx context.Context, items []OrderItemInput) ([]entity.SalesReturnItem, int64, error) {
	if len(items) == 0 {
		return nil, 0, apperror.NewBadRequestError("Return must have at least one item")
	}

	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, 0, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var total int64
	lines := make([]entity.SalesReturnItem, 0, len(items))
	for _, item := range items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, 0, apperror.NewBadRequestError("Item quantity must be positive")
		}

		baseQuantity := item.Quantity
		if item.UnitID != nil && (product.BaseUnitID == nil || *item.UnitID != *product.BaseUnitID) {
			unit, err := s.unitRepo.GetByID(ctx, *item.UnitID)
			if err != nil {
				return nil, 0, err
			}
			if unit == nil {
				return nil, 0, apperror.NewNotFoundError("Unit")
			}
			baseQuantity = item.Quantity * unit.Rate
		}

		unitPriceCents := int64(item.UnitPrice * 100)
		lineTotal := int64(item.UnitPrice * item.Quantity * 100)
		total += lineTotal

		lines = append(lines, entity.SalesReturnItem{
			ProductID:    item.ProductID,
			UnitID:       item.UnitID,
			Quantity:     item.Quantity,
			BaseQuantity: baseQuantity,
			UnitPrice:    unitPriceCents,
			Total:        lineTotal,
		})
	}

	return lines, total, nil
}

// GetReturn retrieves a return by ID
func (s *ReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error) {
	ret, err := s.returnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	return ret, nil
}

// ListReturns lists returns with filtering
func (s *ReturnService) ListReturns(ctx context.Context, params *repository.SalesReturnFilterParams) (*pagination.PaginatedResult[entity.SalesReturn], error) {
	returns, total, err := s.returnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// RevertReturn undoes a settled return. revertedBy attributes the
// compensating commission rows.
func (s *ReturnService) RevertReturn(ctx context.Context, id uuid.UUID, revertedBy uuid.UUID) (*entity.SalesReturn, error) {
	ret, err := s.returnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	if ret.Status == enum.DocumentStatusReverted {
		return nil, apperror.ErrAlreadyReverted
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.engine.RevertReturn(ctx, ret, revertedBy); err != nil {
			return err
		}
		return s.returnRepo.UpdateStatus(ctx, id, enum.DocumentStatusReverted)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("return_no", ret.ReturnNo).Info("sales return reverted")

	ret.Status = enum.DocumentStatusReverted
	return ret, nil
}
