package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
)

// GetEmployeeID extracts the authenticated employee's ID from the Gin context
func GetEmployeeID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get("employee_id")
	if !exists {
		return nil
	}
	employeeID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &employeeID
}

// GetEmployeeRole extracts the authenticated employee's role from the Gin context
func GetEmployeeRole(c *gin.Context) string {
	role, exists := c.Get("employee_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// GetStoreID extracts the authenticated employee's store assignment, if any
func GetStoreID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get("store_id")
	if !exists {
		return nil
	}
	storeID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &storeID
}

// IsAdmin checks if the authenticated employee holds the admin role
func IsAdmin(c *gin.Context) bool {
	return GetEmployeeRole(c) == entity.RoleAdmin
}
