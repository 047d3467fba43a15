// campus-crm/internal/handlers/role_handler.go
package handlers

import (
	"net/http"

	"campus-crm/config"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoleInput binds the payload for creating or updating a role.
type RoleInput struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	PermissionIDs []uint `json:"permissionIds"`
}

// ListRolesHandler returns all roles with their permissions.
func ListRolesHandler(c *gin.Context) {
	var roles []models.Role
	if err := config.DB.Preload("Permissions").Order("id asc").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch roles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roles})
}

// GetRoleHandler retrieves one role by ID.
func GetRoleHandler(c *gin.Context) {
	var role models.Role
	if err := config.DB.Preload("Permissions").First(&role, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	c.JSON(http.StatusOK, role)
}

// CreateRoleHandler creates a role with an optional permission set.
func CreateRoleHandler(c *gin.Context) {
	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.Role{Name: input.Name, Description: input.Description}
	if len(input.PermissionIDs) > 0 {
		if err := config.DB.Find(&role.Permissions, input.PermissionIDs).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown permission IDs"})
			return
		}
	}

	if err := config.DB.Create(&role).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Role name already taken"})
		return
	}
	c.JSON(http.StatusCreated, role)
}

// UpdateRoleHandler updates a role and replaces its permission set.
func UpdateRoleHandler(c *gin.Context) {
	var role models.Role
	if err := config.DB.First(&role, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role.Name = input.Name
	role.Description = input.Description
	if err := config.DB.Save(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	var permissions []models.Permission
	if len(input.PermissionIDs) > 0 {
		if err := config.DB.Find(&permissions, input.PermissionIDs).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown permission IDs"})
			return
		}
	}
	if err := config.DB.Model(&role).Association("Permissions").Replace(permissions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update permissions"})
		return
	}

	c.JSON(http.StatusOK, role)
}

// DeleteRoleHandler deletes a role. User assignments fall away with it.
func DeleteRoleHandler(c *gin.Context) {
	if err := config.DB.Delete(&models.Role{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role deleted"})
}
