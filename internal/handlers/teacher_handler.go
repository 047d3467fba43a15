// campus-crm/internal/handlers/teacher_handler.go
package handlers

import (
	"net/http"
	"strings"

	"campus-crm/config"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeacherInput binds the teacher profile payload.
type TeacherInput struct {
	LastName      string  `json:"lastName" binding:"required"`
	FirstName     string  `json:"firstName" binding:"required"`
	MiddleName    string  `json:"middleName"`
	Gender        string  `json:"gender"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Qualification string  `json:"qualification"`
	JoinDate      string  `json:"joinDate"` // YYYY-MM-DD
	BaseSalary    float64 `json:"baseSalary" binding:"min=0"`
	UserID        *uint   `json:"userId"`
}

// ListTeachersHandler returns teachers with pagination and name search.
// ?active=true hides former staff.
func ListTeachersHandler(c *gin.Context) {
	var teachers []models.Teacher
	var totalRows int64

	query := config.DB.Model(&models.Teacher{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = true")
	}

	query.Count(&totalRows)
	if err := query.Scopes(Paginate(c)).Order("last_name asc, first_name asc").Find(&teachers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch teachers"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, teachers, totalRows))
}

// GetTeacherHandler retrieves a single teacher.
func GetTeacherHandler(c *gin.Context) {
	var teacher models.Teacher
	if err := config.DB.First(&teacher, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// CreateTeacherHandler registers a new teacher.
func CreateTeacherHandler(c *gin.Context) {
	var input TeacherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	joinDate, err := parseOptionalDate(input.JoinDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid join date, expected YYYY-MM-DD"})
		return
	}

	teacher := models.Teacher{
		LastName:      input.LastName,
		FirstName:     input.FirstName,
		MiddleName:    input.MiddleName,
		Gender:        input.Gender,
		Phone:         input.Phone,
		Email:         input.Email,
		Qualification: input.Qualification,
		JoinDate:      joinDate,
		BaseSalary:    input.BaseSalary,
		UserID:        input.UserID,
	}
	if err := config.DB.Create(&teacher).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create teacher"})
		return
	}
	c.JSON(http.StatusCreated, teacher)
}

// UpdateTeacherHandler updates a teacher profile. Changing BaseSalary only
// affects summaries computed from now on; past months keep reflecting the
// payments actually made.
func UpdateTeacherHandler(c *gin.Context) {
	var teacher models.Teacher
	if err := config.DB.First(&teacher, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		return
	}

	var input TeacherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	joinDate, err := parseOptionalDate(input.JoinDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid join date, expected YYYY-MM-DD"})
		return
	}

	teacher.LastName = input.LastName
	teacher.FirstName = input.FirstName
	teacher.MiddleName = input.MiddleName
	teacher.Gender = input.Gender
	teacher.Phone = input.Phone
	teacher.Email = input.Email
	teacher.Qualification = input.Qualification
	if joinDate != nil {
		teacher.JoinDate = joinDate
	}
	teacher.BaseSalary = input.BaseSalary
	teacher.UserID = input.UserID

	if err := config.DB.Save(&teacher).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update teacher"})
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// DeleteTeacherHandler soft-deletes a teacher. Payout history survives for
// the payroll journal.
func DeleteTeacherHandler(c *gin.Context) {
	if err := config.DB.Delete(&models.Teacher{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete teacher"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Teacher deleted"})
}
