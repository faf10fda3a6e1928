package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Purchase records goods received from a supplier. The unpaid portion
// moves the supplier's debt; no commissions are involved.
type Purchase struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ReferenceNo     string              `gorm:"size:100;unique;not null" json:"reference_no"`
	EmployeeID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"employee_id"`
	SupplierID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	StoreID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"store_id"`
	PurchaseDate    time.Time           `gorm:"type:date;not null" json:"purchase_date"`
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
	Employee Employee       `gorm:"foreignKey:EmployeeID" json:"-"`
	Supplier Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Store    Store          `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Purchase) MarshalJSON() ([]byte, error) {
	type Alias Purchase
	return json.Marshal(&struct {
		Alias
		TotalAmount     float64 `json:"total_amount"`
		AmountPaid      float64 `json:"amount_paid"`
		AmountRemaining float64 `json:"amount_remaining"`
	}{
		Alias:           Alias(p),
		TotalAmount:     float64(p.TotalAmount) / 100,
		AmountPaid:      float64(p.AmountPaid) / 100,
		AmountRemaining: float64(p.AmountRemaining) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem represents a line item in a purchase
type PurchaseItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_id"`
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
	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Unit     *Unit    `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i PurchaseItem) MarshalJSON() ([]byte, error) {
	type Alias PurchaseItem
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

// BeforeCreate generates a UUID before creating a new purchase item
func (i *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
