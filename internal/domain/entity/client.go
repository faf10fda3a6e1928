package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a customer on the sales side of the business.
// Debt is the running balance the client owes, in cents; every settled
// order or deferred return moves it through the debt ledger.
type Client struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ResponsibleEmployeeID *uuid.UUID     `gorm:"type:uuid;index" json:"responsible_employee_id,omitempty"`
	Name                  string         `gorm:"size:255;not null" json:"name"`
	Email                 *string        `gorm:"size:255" json:"email,omitempty"`
	Phone                 *string        `gorm:"size:50" json:"phone,omitempty"`
	Address               *string        `gorm:"type:text" json:"address,omitempty"`
	Debt                  int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	ResponsibleEmployee *Employee    `gorm:"foreignKey:ResponsibleEmployeeID" json:"responsible_employee,omitempty"`
	Orders              []SalesOrder `gorm:"foreignKey:ClientID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Client) MarshalJSON() ([]byte, error) {
	type Alias Client
	return json.Marshal(&struct {
		Alias
		Debt float64 `json:"debt"`
	}{
		Alias: Alias(c),
		Debt:  float64(c.Debt) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
