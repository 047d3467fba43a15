// campus-crm/models/student.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Student represents an admitted pupil.
type Student struct {
	gorm.Model
	AdmissionNumber string `json:"admissionNumber" gorm:"unique;not null"`
	PhotoURL        string `json:"photoUrl"`
	ClassID         *uint  `json:"classId"`

	IsStudying *bool      `json:"isStudying" gorm:"default:true"`
	LastName   string     `json:"lastName" gorm:"not null"`
	FirstName  string     `json:"firstName" gorm:"not null"`
	MiddleName string     `json:"middleName"`
	Gender     string     `json:"gender"`
	BirthDate  *time.Time `json:"birthDate"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	Comments   string     `json:"comments"`

	// Guardian contact used on receipts and notices.
	GuardianName  string `json:"guardianName"`
	GuardianPhone string `json:"guardianPhone"`
	GuardianEmail string `json:"guardianEmail"`
	HomeAddress   string `json:"homeAddress"`

	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}
