// campus-crm/internal/handlers/leave_handler.go
package handlers

import (
	"net/http"
	"time"

	"campus-crm/config"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
)

// LeaveRequestInput binds the payload for filing a leave request.
type LeaveRequestInput struct {
	TeacherID uint   `json:"teacherId" binding:"required"`
	FromDate  string `json:"fromDate" binding:"required"`
	ToDate    string `json:"toDate" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// CreateLeaveRequestHandler files a new request in Pending state.
func CreateLeaveRequestHandler(c *gin.Context) {
	var input LeaveRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fromDate, err := time.Parse(dateLayout, input.FromDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate, expected YYYY-MM-DD"})
		return
	}
	toDate, err := time.Parse(dateLayout, input.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate, expected YYYY-MM-DD"})
		return
	}
	if toDate.Before(fromDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toDate must not be before fromDate"})
		return
	}

	var teacher models.Teacher
	if err := config.DB.First(&teacher, input.TeacherID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		return
	}

	request := models.LeaveRequest{
		TeacherID: input.TeacherID,
		FromDate:  fromDate,
		ToDate:    toDate,
		Reason:    input.Reason,
		Status:    models.LeavePending,
	}
	if err := config.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create leave request"})
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ListLeaveRequestsHandler returns requests, optionally filtered by status
// or teacher, newest first.
func ListLeaveRequestsHandler(c *gin.Context) {
	query := config.DB.Model(&models.LeaveRequest{}).Preload("Teacher").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if teacherID := c.Query("teacher_id"); teacherID != "" {
		query = query.Where("teacher_id = ?", teacherID)
	}

	var total int64
	query.Count(&total)

	var requests []models.LeaveRequest
	if err := query.Scopes(Paginate(c)).Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch leave requests"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, requests, total))
}

// GetLeaveRequestHandler returns one request.
func GetLeaveRequestHandler(c *gin.Context) {
	var request models.LeaveRequest
	if err := config.DB.Preload("Teacher").First(&request, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
		return
	}
	c.JSON(http.StatusOK, request)
}

// DecideLeaveInput carries the verdict for a pending request.
type DecideLeaveInput struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected"`
	Note   string `json:"note"`
}

// DecideLeaveRequestHandler moves a Pending request to Approved or
// Rejected. Decided requests are immutable: a second decision gets 409.
func DecideLeaveRequestHandler(c *gin.Context) {
	var request models.LeaveRequest
	if err := config.DB.First(&request, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
		return
	}
	if request.Status != models.LeavePending {
		c.JSON(http.StatusConflict, gin.H{"error": "Leave request has already been decided"})
		return
	}

	var input DecideLeaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deciderID := currentUserID(c)
	now := time.Now()
	request.Status = input.Status
	request.DecidedBy = &deciderID
	request.DecidedAt = &now
	request.DecisionNote = input.Note

	if err := config.DB.Save(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update leave request"})
		return
	}

	PublishEvent("leave_decided", gin.H{
		"leaveRequestId": request.ID,
		"teacherId":      request.TeacherID,
		"status":         request.Status,
	})

	c.JSON(http.StatusOK, request)
}
