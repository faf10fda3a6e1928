package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	domainRepo "github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type salesOrderRepository struct {
	db *gorm.DB
}

// NewSalesOrderRepository creates a new sales order repository
func NewSalesOrderRepository(db *gorm.DB) domainRepo.SalesOrderRepository {
	return &salesOrderRepository{db: db}
}

func (r *salesOrderRepository) Create(ctx context.Context, order *entity.SalesOrder) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(order).Error
}

func (r *salesOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Client").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&order, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Client").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Unit").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) Update(ctx context.Context, order *entity.SalesOrder) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(order).Error
}

func (r *salesOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.SalesOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *salesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.SalesOrder{}, "id = ?", id).Error
}

func (r *salesOrderRepository) List(ctx context.Context, params *domainRepo.SalesOrderFilterParams) ([]entity.SalesOrder, int64, error) {
	var orders []entity.SalesOrder
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.SalesOrder{})

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.EmployeeID != nil {
		query = query.Where("employee_id = ?", *params.EmployeeID)
	}

	if params.PaymentType != nil {
		query = query.Where("payment_type = ?", *params.PaymentType)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("Employee").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

// ListWithCursor returns orders using cursor-based pagination
// Fetches limit+1 items to detect if there are more results
func (r *salesOrderRepository) ListWithCursor(ctx context.Context, params *domainRepo.SalesOrderCursorFilterParams) ([]entity.SalesOrder, error) {
	var orders []entity.SalesOrder

	params.Cursor.Validate()
	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.SalesOrder{})

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.EmployeeID != nil {
		query = query.Where("employee_id = ?", *params.EmployeeID)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Client").
		Order("created_at ASC, id ASC").
		Find(&orders).Error

	return orders, err
}

func (r *salesOrderRepository) GetDueOrders(ctx context.Context, params *pagination.PaginationParams) ([]entity.SalesOrder, int64, error) {
	var orders []entity.SalesOrder
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.SalesOrder{}).
		Where("status = ? AND amount_remaining > 0", enum.DocumentStatusActive)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Client").
		Order("order_date ASC").
		Find(&orders).Error

	return orders, total, err
}

// NextInvoiceNo issues a per-day sequential invoice number. Reverted
// orders keep their numbers, so the counter only ever moves forward.
func (r *salesOrderRepository) NextInvoiceNo(ctx context.Context, date time.Time) (string, error) {
	var count int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.SalesOrder{}).
		Unscoped().
		Where("order_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%04d", date.Format("20060102"), count+1), nil
}

type salesOrderItemRepository struct {
	db *gorm.DB
}

// NewSalesOrderItemRepository creates a new sales order item repository
func NewSalesOrderItemRepository(db *gorm.DB) domainRepo.SalesOrderItemRepository {
	return &salesOrderItemRepository{db: db}
}

func (r *salesOrderItemRepository) CreateBatch(ctx context.Context, items []entity.SalesOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *salesOrderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.SalesOrderItem, error) {
	var items []entity.SalesOrderItem
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Product").
		Preload("Unit").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

func (r *salesOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Delete(&entity.SalesOrderItem{}, "order_id = ?", orderID).Error
}
