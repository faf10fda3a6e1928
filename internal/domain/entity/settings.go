package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settings holds business-wide configuration. A single row is seeded at
// migration time; commission rates are percentages (5 means 5%).
type Settings struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessName         string    `gorm:"size:255;not null" json:"business_name"`
	Currency             string    `gorm:"size:10;default:'USD'" json:"currency"`
	OrderCommissionRate  float64   `gorm:"default:0" json:"order_commission_rate"`
	ReturnCommissionRate float64   `gorm:"default:0" json:"return_commission_rate"`
	ReceiptFooter        *string   `gorm:"type:text" json:"receipt_footer,omitempty"`
	LowStockAlerts       bool      `gorm:"default:true" json:"low_stock_alerts"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating settings
func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Settings model
func (Settings) TableName() string {
	return "settings"
}
