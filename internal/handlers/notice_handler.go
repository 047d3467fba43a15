// campus-crm/internal/handlers/notice_handler.go
package handlers

import (
	"net/http"

	"campus-crm/config"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
)

// NoticeInput binds the payload for posting or editing a notice.
type NoticeInput struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience" binding:"omitempty,oneof=all teachers admins"`
}

// CreateNoticeHandler posts a notice on behalf of the current user and
// signals connected clients.
func CreateNoticeHandler(c *gin.Context) {
	var input NoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notice := models.Notice{
		Title:    input.Title,
		Body:     input.Body,
		Audience: input.Audience,
		AuthorID: currentUserID(c),
	}
	if notice.Audience == "" {
		notice.Audience = "all"
	}
	if err := config.DB.Create(&notice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post notice"})
		return
	}

	config.DB.Preload("Author").First(&notice, notice.ID)

	PublishEvent("notice_posted", gin.H{
		"noticeId": notice.ID,
		"title":    notice.Title,
		"audience": notice.Audience,
	})

	c.JSON(http.StatusCreated, notice)
}

// ListNoticesHandler returns notices newest first, optionally filtered by
// audience.
func ListNoticesHandler(c *gin.Context) {
	query := config.DB.Model(&models.Notice{}).Preload("Author").Order("created_at desc")
	if audience := c.Query("audience"); audience != "" {
		query = query.Where("audience IN ?", []string{audience, "all"})
	}

	var total int64
	query.Count(&total)

	var notices []models.Notice
	if err := query.Scopes(Paginate(c)).Find(&notices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch notices"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, notices, total))
}

// GetNoticeHandler returns one notice.
func GetNoticeHandler(c *gin.Context) {
	var notice models.Notice
	if err := config.DB.Preload("Author").First(&notice, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}
	c.JSON(http.StatusOK, notice)
}

// UpdateNoticeHandler edits a notice's text or audience.
func UpdateNoticeHandler(c *gin.Context) {
	var notice models.Notice
	if err := config.DB.First(&notice, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}

	var input NoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notice.Title = input.Title
	notice.Body = input.Body
	if input.Audience != "" {
		notice.Audience = input.Audience
	}
	if err := config.DB.Save(&notice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notice"})
		return
	}
	c.JSON(http.StatusOK, notice)
}

// DeleteNoticeHandler removes a notice.
func DeleteNoticeHandler(c *gin.Context) {
	if err := config.DB.Delete(&models.Notice{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notice deleted"})
}
