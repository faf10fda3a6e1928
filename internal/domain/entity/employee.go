package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee roles
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSeller  = "seller"
)

// Employee represents a staff member who can execute sales, returns and
// transfers. StoreID is the store assignment the settlement engine
// resolves stock movements against; an employee with no assignment
// cannot settle documents.
type Employee struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID     *uuid.UUID     `gorm:"type:uuid;index" json:"store_id,omitempty"`
	FullName    string         `gorm:"size:255;not null" json:"full_name"`
	Username    string         `gorm:"size:100;unique;not null" json:"username"`
	Email       *string        `gorm:"size:255" json:"email,omitempty"`
	Phone       *string        `gorm:"size:50" json:"phone,omitempty"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Role        string         `gorm:"size:50;default:'seller'" json:"role"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store        *Store                `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Commissions  []Commission          `gorm:"foreignKey:EmployeeID" json:"-"`
	Transactions []EmployeeTransaction `gorm:"foreignKey:EmployeeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// IsAdmin reports whether the employee holds the admin role
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
