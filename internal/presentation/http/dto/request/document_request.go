package request

import (
	"time"

	"github.com/google/uuid"
)

// DocumentItemRequest represents one line in an order, return, purchase
// or transfer request
type DocumentItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	UnitID    *uuid.UUID `json:"unit_id"`
	Quantity  float64    `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64    `json:"unit_price" binding:"min=0"`
}

// CreateOrderRequest represents a sales order creation request
type CreateOrderRequest struct {
	ClientID    *uuid.UUID            `json:"client_id"`
	OrderDate   *time.Time            `json:"order_date"`
	PaymentType string                `json:"payment_type" binding:"required"`
	AmountPaid  float64               `json:"amount_paid" binding:"min=0"`
	Notes       *string               `json:"notes"`
	Items       []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PayDueRequest represents a payment towards an outstanding balance
type PayDueRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateReturnRequest represents a sales return creation request
type CreateReturnRequest struct {
	ClientID    *uuid.UUID            `json:"client_id"`
	OrderID     *uuid.UUID            `json:"order_id"`
	ReturnDate  *time.Time            `json:"return_date"`
	PaymentType string                `json:"payment_type" binding:"required"`
	AmountPaid  float64               `json:"amount_paid" binding:"min=0"`
	Notes       *string               `json:"notes"`
	Items       []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreatePurchaseRequest represents a purchase creation request
type CreatePurchaseRequest struct {
	SupplierID   uuid.UUID             `json:"supplier_id" binding:"required"`
	StoreID      *uuid.UUID            `json:"store_id"`
	PurchaseDate *time.Time            `json:"purchase_date"`
	PaymentType  string                `json:"payment_type" binding:"required"`
	AmountPaid   float64               `json:"amount_paid" binding:"min=0"`
	Notes        *string               `json:"notes"`
	Items        []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreatePurchaseReturnRequest represents a purchase return creation request
type CreatePurchaseReturnRequest struct {
	SupplierID  uuid.UUID             `json:"supplier_id" binding:"required"`
	StoreID     *uuid.UUID            `json:"store_id"`
	PurchaseID  *uuid.UUID            `json:"purchase_id"`
	ReturnDate  *time.Time            `json:"return_date"`
	PaymentType string                `json:"payment_type" binding:"required"`
	AmountPaid  float64               `json:"amount_paid" binding:"min=0"`
	Notes       *string               `json:"notes"`
	Items       []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateTransferRequest represents a stock transfer creation request
type CreateTransferRequest struct {
	FromStoreID  uuid.UUID             `json:"from_store_id" binding:"required"`
	ToStoreID    uuid.UUID             `json:"to_store_id" binding:"required"`
	TransferDate *time.Time            `json:"transfer_date"`
	Notes        *string               `json:"notes"`
	Items        []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// DocumentFilterRequest represents shared document list filters
type DocumentFilterRequest struct {
	Search      string `form:"search"`
	Status      *int   `form:"status"`
	ClientID    string `form:"client_id"`
	SupplierID  string `form:"supplier_id"`
	EmployeeID  string `form:"employee_id"`
	StoreID     string `form:"store_id"`
	PaymentType string `form:"payment_type"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
	Cursor      string `form:"cursor"`
	Limit       int    `form:"limit"`
}
