package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// SalesOrder represents one sale executed by an employee, optionally
// against a known client. AmountRemaining is derived (total - paid) at
// save time and is the figure the debt ledger moves by.
type SalesOrder struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo       string              `gorm:"size:100;unique;not null" json:"invoice_no"`
	EmployeeID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"employee_id"`
	ClientID        *uuid.UUID          `gorm:"type:uuid;index" json:"client_id,omitempty"`
	OrderDate       time.Time           `gorm:"type:date;not null" json:"order_date"`
	Status          enum.DocumentStatus `gorm:"default:0" json:"status"`
	PaymentType     enum.PaymentType    `gorm:"size:50;default:'cash'" json:"payment_type"`
	TotalAmount     int64               `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountPaid      int64               `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountRemaining int64               `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Notes           *string             `gorm:"type:text" json:"notes,omitempty"`
	SyncMeta
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Employee Employee         `gorm:"foreignKey:EmployeeID" json:"-"`
	Client   *Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items    []SalesOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o SalesOrder) MarshalJSON() ([]byte, error) {
	type Alias SalesOrder
	return json.Marshal(&struct {
		Alias
		TotalAmount     float64 `json:"total_amount"`
		AmountPaid      float64 `json:"amount_paid"`
		AmountRemaining float64 `json:"amount_remaining"`
	}{
		Alias:           Alias(o),
		TotalAmount:     float64(o.TotalAmount) / 100,
		AmountPaid:      float64(o.AmountPaid) / 100,
		AmountRemaining: float64(o.AmountRemaining) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sales order
func (o *SalesOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrder model
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// SalesOrderItem represents a line item in a sales order. Quantity is in
// the transaction unit the cashier picked; BaseQuantity is the converted
// amount the stock ledger moves by.
type SalesOrderItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	UnitID       *uuid.UUID     `gorm:"type:uuid" json:"unit_id,omitempty"`
	Quantity     float64        `gorm:"not null" json:"quantity"`
	BaseQuantity float64        `gorm:"not null" json:"base_quantity"`
	UnitPrice    int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total        int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   SalesOrder `gorm:"foreignKey:OrderID" json:"-"`
	Product Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Unit    *Unit      `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i SalesOrderItem) MarshalJSON() ([]byte, error) {
	type Alias SalesOrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Total:     float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sales order item
func (i *SalesOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrderItem model
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}
