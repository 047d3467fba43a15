// campus-crm/models/attendance.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// AttendanceRecord marks one student's attendance for one calendar day.
// A student has at most one record per day; marking again overwrites it.
type AttendanceRecord struct {
	gorm.Model
	StudentID uint      `json:"studentId" gorm:"not null;uniqueIndex:idx_attendance_student_day"`
	ClassID   uint      `json:"classId" gorm:"not null;index"`
	Date      time.Time `json:"date" gorm:"not null;uniqueIndex:idx_attendance_student_day"`
	Status    string    `json:"status" gorm:"size:20;not null"`
	MarkedBy  uint      `json:"markedBy"`
}
