package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Commission is one earned (or, on returns, negative) commission row tied
// to a source document. IsMain marks the selling employee's row; the
// client's responsible employee gets a secondary row of equal amount.
type Commission struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	SourceID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_commission_source" json:"source_id"`
	SourceType enum.SourceType `gorm:"size:50;not null;index:idx_commission_source" json:"source_type"`
	Amount     int64           `gorm:"not null" json:"-"` // Stored in cents, signed, excluded from JSON
	Rate       float64         `gorm:"not null" json:"rate"`
	IsMain     bool            `gorm:"default:true" json:"is_main"`
	Date       time.Time       `gorm:"type:date;not null" json:"date"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Commission) MarshalJSON() ([]byte, error) {
	type Alias Commission
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(c),
		Amount: float64(c.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new commission
func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Commission model
func (Commission) TableName() string {
	return "commissions"
}
