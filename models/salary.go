// campus-crm/models/salary.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// SalaryPayment is one payout to a teacher. Regular payouts count toward the
// monthly base salary cap, bonuses do not.
type SalaryPayment struct {
	gorm.Model
	TeacherID     uint      `json:"teacherId" gorm:"not null;index"`
	Teacher       Teacher   `json:"-"`
	PeriodKey     string    `json:"periodKey" gorm:"size:7;not null;index"` // normalized "YYYY-MM"
	Amount        float64   `json:"amount" gorm:"type:numeric(12,2);not null"`
	Kind          string    `json:"kind" gorm:"size:20;not null;default:'regular'"`
	Method        string    `json:"method" gorm:"size:50"`
	ReceiptNumber string    `json:"receiptNumber" gorm:"unique;not null"`
	PaymentDate   time.Time `json:"paymentDate" gorm:"not null"`
	Comment       string    `json:"comment"`
}
