package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateEmployeeRequest represents an employee creation request
type CreateEmployeeRequest struct {
	FullName string     `json:"full_name" binding:"required,min=2,max=255"`
	Username string     `json:"username" binding:"required,min=2,max=100"`
	Password string     `json:"password" binding:"required,min=8"`
	Email    *string    `json:"email" binding:"omitempty,email"`
	Phone    *string    `json:"phone" binding:"omitempty,max=50"`
	Role     string     `json:"role" binding:"required"`
	StoreID  *uuid.UUID `json:"store_id"`
}

// UpdateEmployeeRequest represents an employee update request
type UpdateEmployeeRequest struct {
	FullName *string    `json:"full_name" binding:"omitempty,min=2,max=255"`
	Email    *string    `json:"email" binding:"omitempty,email"`
	Phone    *string    `json:"phone" binding:"omitempty,max=50"`
	Role     *string    `json:"role"`
	StoreID  *uuid.UUID `json:"store_id"`
	IsActive *bool      `json:"is_active"`
}

// AddTransactionRequest represents a manual employee ledger entry
type AddTransactionRequest struct {
	Type   string     `json:"type" binding:"required"`
	Amount float64    `json:"amount" binding:"required,gt=0"`
	Notes  *string    `json:"notes"`
	Date   *time.Time `json:"date"`
}
