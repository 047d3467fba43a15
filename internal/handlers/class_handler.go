// campus-crm/internal/handlers/class_handler.go
package handlers

import (
	"net/http"
	"strings"

	"campus-crm/config"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListClassesHandler returns classes with student counts and assigned
// teacher names. Paginated unless `?all=true`.
func ListClassesHandler(c *gin.Context) {
	// string_agg cannot be scanned into a []string directly, so the raw row
	// carries teachers as one joined string.
	type rawClassResult struct {
		ID           uint
		Grade        int
		Section      string
		Language     string
		StudentCount int
		Teachers     string
	}
	var rawResults []rawClassResult

	query := config.DB.Table("classes c").
		Select(`
            c.id, c.grade, c.section, c.language,
            (SELECT COUNT(*) FROM students s WHERE s.class_id = c.id AND s.deleted_at IS NULL) as student_count,
            COALESCE(
                (SELECT string_agg(t.last_name || ' ' || t.first_name, ', ')
                 FROM class_assignments ca
                 JOIN teachers t ON ca.teacher_id = t.id
                 WHERE ca.class_id = c.id),
                ''
            ) as teachers
        `).
		Order("c.grade, c.section")

	if c.Query("all") == "true" {
		if err := query.Scan(&rawResults).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch classes"})
			return
		}
	} else {
		if err := query.Scopes(Paginate(c)).Scan(&rawResults).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch classes"})
			return
		}
	}

	classes := make([]models.ClassResponse, 0, len(rawResults))
	for _, raw := range rawResults {
		var teachers []string
		if raw.Teachers != "" {
			teachers = strings.Split(raw.Teachers, ", ")
		}
		classes = append(classes, models.ClassResponse{
			ID:           raw.ID,
			Grade:        raw.Grade,
			Section:      raw.Section,
			StudentCount: raw.StudentCount,
			Language:     raw.Language,
			Teachers:     teachers,
		})
	}

	if c.Query("all") == "true" {
		c.JSON(http.StatusOK, classes)
		return
	}
	var totalRows int64
	config.DB.Model(&models.Class{}).Count(&totalRows)
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, classes, totalRows))
}

// GetClassHandler retrieves one class with its assignments.
func GetClassHandler(c *gin.Context) {
	var class models.Class
	if err := config.DB.Preload("Assignments.Teacher").Preload("Assignments.Subject").First(&class, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	c.JSON(http.StatusOK, class)
}

// CreateClassHandler creates a class together with its teacher assignments
// in one transaction.
func CreateClassHandler(c *gin.Context) {
	var input models.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class data: " + err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		newClass := models.Class{
			Grade:    input.Grade,
			Section:  strings.ToUpper(input.Section),
			Language: input.Language,
		}
		if err := tx.Create(&newClass).Error; err != nil {
			return err
		}

		for _, a := range input.Assignments {
			assignment := models.ClassAssignment{
				ClassID:     newClass.ID,
				TeacherID:   a.TeacherID,
				SubjectID:   a.SubjectID,
				RoleInClass: a.RoleInClass,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create class: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Class created"})
}

// UpdateClassHandler updates a class and replaces its assignments.
func UpdateClassHandler(c *gin.Context) {
	var class models.Class
	if err := config.DB.First(&class, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		return
	}

	var input models.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class data: " + err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		class.Grade = input.Grade
		class.Section = strings.ToUpper(input.Section)
		class.Language = input.Language
		if err := tx.Save(&class).Error; err != nil {
			return err
		}

		if err := tx.Where("class_id = ?", class.ID).Delete(&models.ClassAssignment{}).Error; err != nil {
			return err
		}
		for _, a := range input.Assignments {
			assignment := models.ClassAssignment{
				ClassID:     class.ID,
				TeacherID:   a.TeacherID,
				SubjectID:   a.SubjectID,
				RoleInClass: a.RoleInClass,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update class: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class updated"})
}

// DeleteClassHandler deletes a class. Students keep their records but lose
// the class reference.
func DeleteClassHandler(c *gin.Context) {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Student{}).Where("class_id = ?", c.Param("id")).Update("class_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", c.Param("id")).Delete(&models.ClassAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Class{}, c.Param("id")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete class"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class deleted"})
}
