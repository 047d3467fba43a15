// campus-crm/internal/handlers/handler_utils.go
package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// currentUserID extracts the authenticated user's ID set by AuthMiddleware.
func currentUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// currentAcademicYear returns the starting year of the school year that
// contains t: September through December belong to the year in progress,
// January through August to the one that started the previous autumn.
func currentAcademicYear(t time.Time) int {
	if t.Month() >= time.September {
		return t.Year()
	}
	return t.Year() - 1
}

// academicYearLabel renders the "2025-2026" convention for a starting year.
func academicYearLabel(startYear int) string {
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}

// academicYearOfKey returns the starting year of the school year containing
// a normalized "YYYY-MM" key. A back-dated payment is labeled by its period,
// not by the day it was posted.
func academicYearOfKey(periodKey string) int {
	t, err := time.Parse("2006-01", periodKey)
	if err != nil {
		return 0
	}
	return currentAcademicYear(t)
}
