package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// EmployeeTransaction is one row in the append-only employee money
// ledger. Corrections are made with opposite-sign rows; existing rows
// are never edited or removed.
type EmployeeTransaction struct {
	ID                  uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID          uuid.UUID            `gorm:"type:uuid;not null;index" json:"employee_id"`
	CreatedByID         *uuid.UUID           `gorm:"type:uuid" json:"created_by_id,omitempty"`
	Type                enum.TransactionType `gorm:"size:50;not null;index" json:"type"`
	Amount              int64                `gorm:"not null" json:"-"` // Stored in cents, signed, excluded from JSON
	RelatedCommissionID *uuid.UUID           `gorm:"type:uuid;index" json:"related_commission_id,omitempty"`
	Notes               *string              `gorm:"type:text" json:"notes,omitempty"`
	Date                time.Time            `gorm:"type:date;not null" json:"date"`
	CreatedAt           time.Time            `json:"created_at"`

	// Relationships. The related commission is referenced by ID only so
	// that reverting a document can hard-delete commission rows while the
	// compensating ledger row keeps pointing at the removed ID.
	Employee  Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	CreatedBy *Employee `gorm:"foreignKey:CreatedByID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t EmployeeTransaction) MarshalJSON() ([]byte, error) {
	type Alias EmployeeTransaction
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(t),
		Amount: float64(t.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new employee transaction
func (t *EmployeeTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EmployeeTransaction model
func (EmployeeTransaction) TableName() string {
	return "employee_transactions"
}
