// campus-crm/models/class_assignment.go
package models

import "time"

// ClassAssignment links a teacher to a class, optionally for one subject,
// with a role in that class ("class teacher", "subject teacher").
type ClassAssignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassID     uint      `gorm:"not null" json:"classId"`
	TeacherID   uint      `gorm:"not null" json:"teacherId"`
	SubjectID   *uint     `json:"subjectId"`
	RoleInClass string    `gorm:"size:100;not null" json:"roleInClass"`
	CreatedAt   time.Time `json:"createdAt"`

	Teacher Teacher  `gorm:"foreignKey:TeacherID"`
	Subject *Subject `gorm:"foreignKey:SubjectID"`
}
