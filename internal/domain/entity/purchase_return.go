package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PurchaseReturn records goods sent back to a supplier. AmountPaid is
// what the supplier refunded immediately; AmountRemaining (total - paid)
// comes off the supplier debt ledger, mirroring the purchase.
type PurchaseReturn struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ReturnNo        string              `gorm:"size:100;unique;not null" json:"return_no"`
	EmployeeID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"employee_id"`
	SupplierID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	StoreID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"store_id"`
	PurchaseID      *uuid.UUID          `gorm:"type:uuid;index" json:"purchase_id,omitempty"`
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
	Employee Employee             `gorm:"foreignKey:EmployeeID" json:"-"`
	Supplier Supplier             `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Store    Store                `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Purchase *Purchase            `gorm:"foreignKey:PurchaseID" json:"purchase,omitempty"`
	Items    []PurchaseReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r PurchaseReturn) MarshalJSON() ([]byte, error) {
	type Alias PurchaseReturn
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

// BeforeCreate generates a UUID before creating a new purchase return
func (r *PurchaseReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseReturn model
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// PurchaseReturnItem represents a line item in a purchase return
type PurchaseReturnItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	UnitID       *uuid.UUID     `gorm:"type:uuid" json:"unit_id,omitempty"`
	Quantity     float64        `gorm:"not null" json:"quantity"`
	BaseQuantity float64        `gorm:"not null" json:"base_quantity"`
	UnitCost     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total        int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Return  PurchaseReturn `gorm:"foreignKey:ReturnID" json:"-"`
	Product Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Unit    *Unit          `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i PurchaseReturnItem) MarshalJSON() ([]byte, error) {
	type Alias PurchaseReturnItem
	return json.Marshal(&struct {
		Alias
		UnitCost float64 `json:"unit_cost"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(i),
		UnitCost: float64(i.UnitCost) / 100,
		Total:    float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase return item
func (i *PurchaseReturnItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseReturnItem model
func (PurchaseReturnItem) TableName() string {
	return "purchase_return_items"
}
