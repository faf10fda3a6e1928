package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	BaseUnitID    *uuid.UUID `json:"base_unit_id"`
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	Code          string     `json:"code" binding:"required,max=100"`
	QuantityAlert float64    `json:"quantity_alert" binding:"min=0"`
	BuyingPrice   float64    `json:"buying_price" binding:"min=0"`
	SellingPrice  float64    `json:"selling_price" binding:"min=0"`
	Notes         *string    `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	BaseUnitID    *uuid.UUID `json:"base_unit_id"`
	Name          *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Code          *string    `json:"code" binding:"omitempty,min=1,max=100"`
	QuantityAlert *float64   `json:"quantity_alert" binding:"omitempty,min=0"`
	BuyingPrice   *float64   `json:"buying_price" binding:"omitempty,min=0"`
	SellingPrice  *float64   `json:"selling_price" binding:"omitempty,min=0"`
	Notes         *string    `json:"notes"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	UnitID     string `form:"unit_id"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Cursor     string `form:"cursor"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}

// SetStockRequest represents a manual stock count
type SetStockRequest struct {
	StoreID  uuid.UUID `json:"store_id" binding:"required"`
	Quantity float64   `json:"quantity" binding:"min=0"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// CreateUnitRequest represents a unit creation request
type CreateUnitRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=255"`
	ShortCode string  `json:"short_code" binding:"omitempty,max=50"`
	Rate      float64 `json:"rate" binding:"omitempty,gt=0"`
}

// UpdateUnitRequest represents a unit update request
type UpdateUnitRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=1,max=255"`
	ShortCode *string  `json:"short_code" binding:"omitempty,max=50"`
	Rate      *float64 `json:"rate" binding:"omitempty,gt=0"`
}
