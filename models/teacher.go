// campus-crm/models/teacher.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Teacher represents a staff member on the payroll. BaseSalary is the
// recurring monthly obligation the salary ledger is computed against;
// editing it never rewrites summaries already derived for past months,
// those are recomputed from payment history on every request.
type Teacher struct {
	gorm.Model
	UserID        *uint      `json:"userId"`
	LastName      string     `json:"lastName" gorm:"not null"`
	FirstName     string     `json:"firstName" gorm:"not null"`
	MiddleName    string     `json:"middleName"`
	Gender        string     `json:"gender"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Qualification string     `json:"qualification"`
	PhotoURL      string     `json:"photoUrl"`
	JoinDate      *time.Time `json:"joinDate"`
	IsActive      *bool      `json:"isActive" gorm:"default:true"`
	BaseSalary    float64    `json:"baseSalary" gorm:"type:numeric(12,2);not null;default:0"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
