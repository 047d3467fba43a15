// campus-crm/models/fee.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// FeeStructure is the monthly tuition fee for a grade level.
type FeeStructure struct {
	gorm.Model
	Grade       int     `json:"grade" gorm:"unique;not null"` // grade level (0-12)
	LastYearFee float64 `json:"lastYearFee" gorm:"type:numeric(12,2)"`
	MonthlyFee  float64 `json:"monthlyFee" gorm:"type:numeric(12,2)"` // current monthly tuition
}

// FeePayment is one recorded tuition payment. Rows are append-only: they are
// never edited, and removal is a soft delete reserved for administrators.
type FeePayment struct {
	gorm.Model
	StudentID     uint      `json:"studentId" gorm:"not null;index"`
	Student       Student   `json:"-"`
	PeriodKey     string    `json:"periodKey" gorm:"size:7;not null;index"` // normalized "YYYY-MM"
	AcademicYear  string    `json:"academicYear"`                           // e.g. "2025-2026"
	Amount        float64   `json:"amount" gorm:"type:numeric(12,2);not null"`
	Kind          string    `json:"kind" gorm:"size:20;not null;default:'regular'"`
	Method        string    `json:"method" gorm:"size:50"`
	ReceiptNumber string    `json:"receiptNumber" gorm:"unique;not null"`
	PaymentDate   time.Time `json:"paymentDate" gorm:"not null"`
	Comment       string    `json:"comment"`

	// Transaction ID assigned by the bank integration. Nullable; used to
	// drop duplicate webhook deliveries.
	ExternalID *string `json:"externalId" gorm:"uniqueIndex"`
}
