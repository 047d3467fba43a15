// campus-crm/internal/handlers/student_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"campus-crm/config"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentInput binds the admission form payload.
type StudentInput struct {
	LastName      string `json:"lastName" binding:"required"`
	FirstName     string `json:"firstName" binding:"required"`
	MiddleName    string `json:"middleName"`
	Gender        string `json:"gender"`
	BirthDate     string `json:"birthDate"` // YYYY-MM-DD
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ClassID       *uint  `json:"classId"`
	StartDate     string `json:"startDate"`
	GuardianName  string `json:"guardianName"`
	GuardianPhone string `json:"guardianPhone"`
	GuardianEmail string `json:"guardianEmail"`
	HomeAddress   string `json:"homeAddress"`
	Comments      string `json:"comments"`
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListStudentsHandler returns students with pagination and search across
// name, admission number and guardian name. ?class_id filters by class,
// ?active=true hides withdrawn students.
func ListStudentsHandler(c *gin.Context) {
	var students []models.Student
	var totalRows int64

	query := config.DB.Model(&models.Student{}).Preload("Class")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(admission_number) LIKE ? OR LOWER(guardian_name) LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_studying = true")
	}

	query.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Order("last_name asc, first_name asc").Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch students"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, students, totalRows))
}

// GetStudentHandler retrieves one student with their class.
func GetStudentHandler(c *gin.Context) {
	var student models.Student
	if err := config.DB.Preload("Class").First(&student, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	c.JSON(http.StatusOK, student)
}

// CreateStudentHandler admits a new student. The admission number is
// generated here, the caller never supplies one.
func CreateStudentHandler(c *gin.Context) {
	var input StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := parseOptionalDate(input.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birth date, expected YYYY-MM-DD"})
		return
	}
	startDate, err := parseOptionalDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}
	if startDate == nil {
		now := time.Now()
		startDate = &now
	}

	student := models.Student{
		AdmissionNumber: newAdmissionNumber(*startDate),
		LastName:        input.LastName,
		FirstName:       input.FirstName,
		MiddleName:      input.MiddleName,
		Gender:          input.Gender,
		BirthDate:       birthDate,
		Phone:           input.Phone,
		Email:           input.Email,
		ClassID:         input.ClassID,
		StartDate:       startDate,
		GuardianName:    input.GuardianName,
		GuardianPhone:   input.GuardianPhone,
		GuardianEmail:   input.GuardianEmail,
		HomeAddress:     input.HomeAddress,
		Comments:        input.Comments,
	}

	if err := config.DB.Create(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		return
	}
	c.JSON(http.StatusCreated, student)
}

// newAdmissionNumber builds a human-readable admission number:
// ADM-<year>-<short unique suffix>.
func newAdmissionNumber(admitted time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ADM-%d-%s", admitted.Year(), suffix)
}

// UpdateStudentHandler updates an existing student's record. The admission
// number is immutable.
func UpdateStudentHandler(c *gin.Context) {
	var student models.Student
	if err := config.DB.First(&student, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var input StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := parseOptionalDate(input.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birth date, expected YYYY-MM-DD"})
		return
	}

	student.LastName = input.LastName
	student.FirstName = input.FirstName
	student.MiddleName = input.MiddleName
	student.Gender = input.Gender
	if birthDate != nil {
		student.BirthDate = birthDate
	}
	student.Phone = input.Phone
	student.Email = input.Email
	student.ClassID = input.ClassID
	student.GuardianName = input.GuardianName
	student.GuardianPhone = input.GuardianPhone
	student.GuardianEmail = input.GuardianEmail
	student.HomeAddress = input.HomeAddress
	student.Comments = input.Comments

	if err := config.DB.Save(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		return
	}
	c.JSON(http.StatusOK, student)
}

// WithdrawStudentHandler marks a student as no longer studying. Payment
// history stays untouched.
func WithdrawStudentHandler(c *gin.Context) {
	var student models.Student
	if err := config.DB.First(&student, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	now := time.Now()
	notStudying := false
	student.IsStudying = &notStudying
	student.EndDate = &now

	if err := config.DB.Save(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw student"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student withdrawn"})
}

// DeleteStudentHandler soft-deletes a student record.
func DeleteStudentHandler(c *gin.Context) {
	if err := config.DB.Delete(&models.Student{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete student"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted"})
}
