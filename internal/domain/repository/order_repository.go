package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/pkg/pagination"
)

// SalesOrderRepository defines the interface for sales order data operations
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.SalesOrder, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	Update(ctx context.Context, order *entity.SalesOrder) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SalesOrderFilterParams) ([]entity.SalesOrder, int64, error)
	ListWithCursor(ctx context.Context, params *SalesOrderCursorFilterParams) ([]entity.SalesOrder, error)
	// GetDueOrders returns active orders with an outstanding balance.
	GetDueOrders(ctx context.Context, params *pagination.PaginationParams) ([]entity.SalesOrder, int64, error)
	// NextInvoiceNo issues the next invoice number for the given date.
	NextInvoiceNo(ctx context.Context, date time.Time) (string, error)
}

// SalesOrderFilterParams contains filtering parameters for order queries
type SalesOrderFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	Status      *enum.DocumentStatus
	ClientID    *uuid.UUID
	EmployeeID  *uuid.UUID
	PaymentType *enum.PaymentType
	StartDate   *time.Time
	EndDate     *time.Time
	SortBy      string
	SortOrder   string
}

// SalesOrderCursorFilterParams contains cursor-based filtering for order queries
type SalesOrderCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	Status     *enum.DocumentStatus
	ClientID   *uuid.UUID
	EmployeeID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// SalesOrderItemRepository defines the interface for order line items
type SalesOrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SalesOrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.SalesOrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
