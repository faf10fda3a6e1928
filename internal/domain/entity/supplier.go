package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Supplier represents a purchasing counterparty. Debt is the running
// balance owed TO the supplier, in cents.
type Supplier struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Email     *string           `gorm:"size:255" json:"email,omitempty"`
	Phone     *string           `gorm:"size:50" json:"phone,omitempty"`
	Address   *string           `gorm:"type:text" json:"address,omitempty"`
	Type      enum.SupplierType `gorm:"size:50;default:'distributor'" json:"type"`
	Debt      int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Purchases []Purchase `gorm:"foreignKey:SupplierID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Supplier) MarshalJSON() ([]byte, error) {
	type Alias Supplier
	return json.Marshal(&struct {
		Alias
		Debt float64 `json:"debt"`
	}{
		Alias: Alias(s),
		Debt:  float64(s.Debt) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
