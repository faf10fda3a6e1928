package request

import "github.com/google/uuid"

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name                  string     `json:"name" binding:"required,min=2,max=255"`
	Email                 *string    `json:"email" binding:"omitempty,email"`
	Phone                 *string    `json:"phone" binding:"omitempty,max=50"`
	Address               *string    `json:"address"`
	ResponsibleEmployeeID *uuid.UUID `json:"responsible_employee_id"`
}

// UpdateClientRequest represents a client update request
type UpdateClientRequest struct {
	Name                  *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Email                 *string    `json:"email" binding:"omitempty,email"`
	Phone                 *string    `json:"phone" binding:"omitempty,max=50"`
	Address               *string    `json:"address"`
	ResponsibleEmployeeID *uuid.UUID `json:"responsible_employee_id"`
}

// RecordPaymentRequest represents a debt payment
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
	Type    string  `json:"type" binding:"omitempty,max=50"`
}

// UpdateSupplierRequest represents a supplier update request
type UpdateSupplierRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
	Type    *string `json:"type" binding:"omitempty,max=50"`
}

// CreateStoreRequest represents a store creation request
type CreateStoreRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// UpdateStoreRequest represents a store update request
type UpdateStoreRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}
