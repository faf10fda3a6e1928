package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// SalesReturn records goods coming back from a client. It may reference
// the original invoice but does not have to; walk-in returns are legal.
// AmountPaid is the portion refunded to the client on the spot;
// AmountRemaining (total - paid) is the figure the debt ledger moves by
// on a deferred return.
type SalesReturn struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ReturnNo        string              `gorm:"size:100;unique;not null" json:"return_no"`
	EmployeeID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"employee_id"`
	ClientID        *uuid.UUID          `gorm:"type:uuid;index" json:"client_id,omitempty"`
	OrderID         *uuid.UUID          `gorm:"type:uuid;index" json:"order_id,omitempty"`
	ReturnDate      time.Time           `gorm:"type:date;not null" json:"return_date"`
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
	Employee Employee          `gorm:"foreignKey:EmployeeID" json:"-"`
	Client   *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Order    *SalesOrder       `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Items    []SalesReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r SalesReturn) MarshalJSON() ([]byte, error) {
	type Alias SalesReturn
	return json.Marshal(&struct {
		Alias
		TotalAmount     float64 `json:"total_amount"`
		AmountPaid      float64 `json:"amount_paid"`
		AmountRemaining float64 `json:"amount_remaining"`
	}{
		Alias:           Alias(r),
		TotalAmount:     float64(r.TotalAmount) / 100,
		AmountPaid:      float64(r.AmountPaid) / 100,
		AmountRemaining: float64(r.AmountRemaining) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sales return
func (r *SalesReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesReturn model
func (SalesReturn) TableName() string {
	return "sales_returns"
}

// SalesReturnItem represents a line item in a sales return
type SalesReturnItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"return_id"`
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
	Return  SalesReturn `gorm:"foreignKey:ReturnID" json:"-"`
	Product Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Unit    *Unit       `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i SalesReturnItem) MarshalJSON() ([]byte, error) {
	type Alias SalesReturnItem
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

// BeforeCreate generates a UUID before creating a new sales return item
func (i *SalesReturnItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesReturnItem model
func (SalesReturnItem) TableName() string {
	return "sales_return_items"
}
