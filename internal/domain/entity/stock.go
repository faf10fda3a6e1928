package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLevel tracks the on-hand quantity of one product at one store,
// in base units. Rows are created on first adjustment and never deleted;
// zero is a valid quantity. Quantity is fractional to support unit
// conversion (half a kilogram, a third of a box).
type StockLevel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_store_product" json:"store_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_store_product" json:"product_id"`
	Quantity  float64   `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Store   Store   `gorm:"foreignKey:StoreID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new stock level
func (s *StockLevel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockLevel model
func (StockLevel) TableName() string {
	return "stock_levels"
}
