// campus-crm/internal/handlers/subject_handler.go
package handlers

import (
	"net/http"

	"campus-crm/config"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
)

// ListSubjectsHandler returns all subjects ordered by name.
func ListSubjectsHandler(c *gin.Context) {
	var subjects []models.Subject
	if err := config.DB.Order("name asc").Find(&subjects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch subjects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subjects})
}

// SubjectInput binds the payload for creating or renaming a subject.
type SubjectInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateSubjectHandler adds a subject.
func CreateSubjectHandler(c *gin.Context) {
	var input SubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	subject := models.Subject{Name: input.Name}
	if err := config.DB.Create(&subject).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Subject already exists"})
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// UpdateSubjectHandler renames a subject.
func UpdateSubjectHandler(c *gin.Context) {
	var subject models.Subject
	if err := config.DB.First(&subject, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
		return
	}
	var input SubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	subject.Name = input.Name
	if err := config.DB.Save(&subject).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subject"})
		return
	}
	c.JSON(http.StatusOK, subject)
}

// DeleteSubjectHandler removes a subject and detaches it from assignments.
func DeleteSubjectHandler(c *gin.Context) {
	if err := config.DB.Model(&models.ClassAssignment{}).Where("subject_id = ?", c.Param("id")).Update("subject_id", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach subject"})
		return
	}
	if err := config.DB.Delete(&models.Subject{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subject"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted"})
}
