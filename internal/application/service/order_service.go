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

// OrderService handles sales order operations. Creating or reverting an
// order runs the settlement engine inside one database transaction, so
// the document and its stock, debt, and commission effects land together.
type OrderService struct {
	tx           *infraRepo.TxManager
	engine       *settlement.Engine
	orderRepo    repository.SalesOrderRepository
	itemRepo     repository.SalesOrderItemRepository
	productRepo  repository.ProductRepository
	unitRepo     repository.UnitRepository
	clientRepo   repository.ClientRepository
	settingsRepo repository.SettingsRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	tx *infraRepo.TxManager,
	engine *settlement.Engine,
	orderRepo repository.SalesOrderRepository,
	itemRepo repository.SalesOrderItemRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.UnitRepository,
	clientRepo repository.ClientRepository,
	settingsRepo repository.SettingsRepository,
) *OrderService {
	return &OrderService{
		tx:           tx,
		engine:       engine,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		unitRepo:     unitRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
	}
}

// OrderItemInput represents one line of an order request
type OrderItemInput struct {
	ProductID uuid.UUID
	UnitID    *uuid.UUID
	Quantity  float64
	UnitPrice float64
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	EmployeeID  uuid.UUID
	ClientID    *uuid.UUID
	OrderDate   time.Time
	PaymentType enum.PaymentType
	AmountPaid  float64
	Notes       *string
	Items       []OrderItemInput
}

// buildLines validates the items, converts quantities to base units and
// computes line totals in cents.
func (s *OrderService) buildLines(ctx context.Context, items []OrderItemInput) ([]entity.SalesOrderItem, int64, error) {
	if len(items) == 0 {
		return nil, 0, apperror.NewBadRequestError("Order must have at least one item")
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
	lines := make([]entity.SalesOrderItem, 0, len(items))
	for _, item := range items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, 0, apperror.NewBadRequestError("Item quantity must be positive")
		}

		// Quantity converts through the unit rate; the base unit has rate 1.
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

		lines = append(lines, entity.SalesOrderItem{
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

// CreateOrder creates a sales order and settles it
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.SalesOrder, error) {
	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
	}

	if !input.PaymentType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown payment type")
	}
	if input.PaymentType.IsDeferred() && input.ClientID == nil {
		return nil, apperror.NewBadRequestError("Deferred payment requires a client")
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
		rate = settings.OrderCommissionRate
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	var order *entity.SalesOrder
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		invoiceNo, err := s.orderRepo.NextInvoiceNo(ctx, orderDate)
		if err != nil {
			return err
		}

		order = &entity.SalesOrder{
			InvoiceNo:       invoiceNo,
			EmployeeID:      input.EmployeeID,
			ClientID:        input.ClientID,
			OrderDate:       orderDate,
			Status:          enum.DocumentStatusActive,
			PaymentType:     input.PaymentType,
			TotalAmount:     total,
			AmountPaid:      paidCents,
			AmountRemaining: total - paidCents,
			Notes:           input.Notes,
		}
		order.Touch()

		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := s.itemRepo.CreateBatch(ctx, lines); err != nil {
			return err
		}

		order.Items = lines
		return s.engine.ProcessOrder(ctx, order, rate)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"invoice_no":  order.InvoiceNo,
		"employee_id": input.EmployeeID,
		"total":       total,
	}).Info("sales order settled")

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.SalesOrderFilterParams) (*pagination.PaginatedResult[entity.SalesOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersWithCursor lists orders with cursor-based pagination
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, params *repository.SalesOrderCursorFilterParams) (*pagination.CursorPaginatedResult[entity.SalesOrder], error) {
	orders, err := s.orderRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(orders, params.Cursor.Limit,
		func(o entity.SalesOrder) string { return o.ID.String() },
		func(o entity.SalesOrder) time.Time { return o.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// RevertOrder undoes a settled order. The document stays in place with
// Reverted status; all its side effects are rolled back atomically.
// revertedBy attributes the compensating commission rows.
func (s *OrderService) RevertOrder(ctx context.Context, id uuid.UUID, revertedBy uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.DocumentStatusReverted {
		return nil, apperror.ErrAlreadyReverted
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.engine.RevertOrder(ctx, order, revertedBy); err != nil {
			return err
		}
		return s.orderRepo.UpdateStatus(ctx, id, enum.DocumentStatusReverted)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("invoice_no", order.InvoiceNo).Info("sales order reverted")

	order.Status = enum.DocumentStatusReverted
	return order, nil
}

// GetDueOrders returns orders with outstanding balances
func (s *OrderService) GetDueOrders(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.SalesOrder], error) {
	orders, total, err := s.orderRepo.GetDueOrders(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// PayDue records a payment towards an order's outstanding balance and
// reduces the client's debt by the same amount.
func (s *OrderService) PayDue(ctx context.Context, orderID uuid.UUID, amount float64) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.DocumentStatusReverted {
		return apperror.NewBadRequestError("Cannot pay a reverted order")
	}

	amountCents := int64(amount * 100)
	if amountCents <= 0 {
		return apperror.NewBadRequestError("Payment must be positive")
	}
	if amountCents > order.AmountRemaining {
		amountCents = order.AmountRemaining
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		order.AmountPaid += amountCents
		order.AmountRemaining -= amountCents
		order.Touch()
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		if order.ClientID != nil {
			return s.clientRepo.AdjustDebt(ctx, *order.ClientID, -amountCents)
		}
		return nil
	})
}
