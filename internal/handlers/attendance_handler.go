// campus-crm/internal/handlers/attendance_handler.go
package handlers

import (
	"math"
	"net/http"
	"time"

	"campus-crm/config"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// MarkAttendanceInput binds a whole class register for one day.
type MarkAttendanceInput struct {
	ClassID uint   `json:"classId" binding:"required"`
	Date    string `json:"date" binding:"required"` // YYYY-MM-DD
	Marks   []struct {
		StudentID uint   `json:"studentId" binding:"required"`
		Status    string `json:"status" binding:"required,oneof=present absent late excused"`
	} `json:"marks" binding:"required,min=1"`
}

// MarkAttendanceHandler records attendance for a class on one date.
// Re-marking the same day overwrites the previous status rather than
// producing duplicates.
func MarkAttendanceHandler(c *gin.Context) {
	var input MarkAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	markedBy := currentUserID(c)
	records := make([]models.AttendanceRecord, 0, len(input.Marks))
	for _, mark := range input.Marks {
		records = append(records, models.AttendanceRecord{
			StudentID: mark.StudentID,
			ClassID:   input.ClassID,
			Date:      date,
			Status:    mark.Status,
			MarkedBy:  markedBy,
		})
	}

	err = config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "updated_at"}),
	}).Create(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance saved", "count": len(records)})
}

// GetClassAttendanceHandler returns the register of one class for one day.
func GetClassAttendanceHandler(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing date, expected YYYY-MM-DD"})
		return
	}

	var records []models.AttendanceRecord
	if err := config.DB.Where("class_id = ? AND date = ?", c.Param("id"), date).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch attendance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

// attendancePercentage computes the share of days a student was in school.
// Late counts as attended; excused days are left out of the denominator.
func attendancePercentage(records []models.AttendanceRecord) float64 {
	var attended, counted int
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent, models.AttendanceLate:
			attended++
			counted++
		case models.AttendanceAbsent:
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(counted)*10000) / 100
}

// GetStudentAttendanceHandler returns a student's records in a date range
// plus the derived attendance percentage.
func GetStudentAttendanceHandler(c *gin.Context) {
	query := config.DB.Where("student_id = ?", c.Param("id")).Order("date asc")

	if from := c.Query("from"); from != "" {
		fromDate, err := time.Parse(dateLayout, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		query = query.Where("date >= ?", fromDate)
	}
	if to := c.Query("to"); to != "" {
		toDate, err := time.Parse(dateLayout, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		query = query.Where("date <= ?", toDate)
	}

	var records []models.AttendanceRecord
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       records,
		"percentage": attendancePercentage(records),
	})
}
