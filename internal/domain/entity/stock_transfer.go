package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockTransfer moves quantities between two stores. Money never moves,
// so there is no payment or debt side to it.
type StockTransfer struct {
	ID           uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ReferenceNo  string              `gorm:"size:100;unique;not null" json:"reference_no"`
	EmployeeID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"employee_id"`
	FromStoreID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"from_store_id"`
	ToStoreID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"to_store_id"`
	TransferDate time.Time           `gorm:"type:date;not null" json:"transfer_date"`
	Status       enum.DocumentStatus `gorm:"default:0" json:"status"`
	Notes        *string             `gorm:"type:text" json:"notes,omitempty"`
	SyncMeta
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Employee  Employee            `gorm:"foreignKey:EmployeeID" json:"-"`
	FromStore Store               `gorm:"foreignKey:FromStoreID" json:"from_store,omitempty"`
	ToStore   Store               `gorm:"foreignKey:ToStoreID" json:"to_store,omitempty"`
	Items     []StockTransferItem `gorm:"foreignKey:TransferID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new stock transfer
func (t *StockTransfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockTransfer model
func (StockTransfer) TableName() string {
	return "stock_transfers"
}

// StockTransferItem represents a line item in a stock transfer
type StockTransferItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TransferID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"transfer_id"`
	ProductID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	UnitID       *uuid.UUID     `gorm:"type:uuid" json:"unit_id,omitempty"`
	Quantity     float64        `gorm:"not null" json:"quantity"`
	BaseQuantity float64        `gorm:"not null" json:"base_quantity"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Transfer StockTransfer `gorm:"foreignKey:TransferID" json:"-"`
	Product  Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Unit     *Unit         `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// BeforeCreate generates a UUID before creating a new stock transfer item
func (i *StockTransferItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockTransferItem model
func (StockTransferItem) TableName() string {
	return "stock_transfer_items"
}
