// campus-crm/models/leave.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Leave request statuses. A decided request is never edited again.
const (
	LeavePending  = "Pending"
	LeaveApproved = "Approved"
	LeaveRejected = "Rejected"
)

// LeaveRequest is a teacher's request for time off awaiting an
// administrator's decision.
type LeaveRequest struct {
	gorm.Model
	TeacherID    uint       `json:"teacherId" gorm:"not null;index"`
	Teacher      Teacher    `json:"teacher"`
	FromDate     time.Time  `json:"fromDate" gorm:"not null"`
	ToDate       time.Time  `json:"toDate" gorm:"not null"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status" gorm:"size:20;not null;default:'Pending'"`
	DecidedBy    *uint      `json:"decidedBy"`
	DecidedAt    *time.Time `json:"decidedAt"`
	DecisionNote string     `json:"decisionNote"`
}
