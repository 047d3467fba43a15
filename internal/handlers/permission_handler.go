// campus-crm/internal/handlers/permission_handler.go
package handlers

import (
	"net/http"

	"campus-crm/config"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
)

// ListPermissionsHandler returns all permissions grouped by category order.
func ListPermissionsHandler(c *gin.Context) {
	var permissions []models.Permission
	if err := config.DB.Order("category asc, name asc").Find(&permissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch permissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": permissions})
}

// PermissionInput binds the payload for creating or updating a permission.
type PermissionInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

// CreatePermissionHandler registers a new named permission.
func CreatePermissionHandler(c *gin.Context) {
	var input PermissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	permission := models.Permission{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
	}
	if err := config.DB.Create(&permission).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Permission name already taken"})
		return
	}
	c.JSON(http.StatusCreated, permission)
}

// UpdatePermissionHandler updates a permission's description and category.
func UpdatePermissionHandler(c *gin.Context) {
	var permission models.Permission
	if err := config.DB.First(&permission, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Permission not found"})
		return
	}

	var input PermissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	permission.Name = input.Name
	permission.Description = input.Description
	permission.Category = input.Category
	if err := config.DB.Save(&permission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update permission"})
		return
	}
	c.JSON(http.StatusOK, permission)
}

// DeletePermissionHandler removes a permission from all roles.
func DeletePermissionHandler(c *gin.Context) {
	if err := config.DB.Delete(&models.Permission{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete permission"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Permission deleted"})
}
