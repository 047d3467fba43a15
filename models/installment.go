// campus-crm/models/installment.go
package models

import "gorm.io/gorm"

// InstallmentPlan describes how a student's annual tuition can be split
// into dated installments. Each installment carries a formula evaluated
// against the annual totals (see the fee plan handler).
type InstallmentPlan struct {
	gorm.Model
	Name         string        `json:"name" gorm:"unique;not null"`
	Description  string        `json:"description"`
	Installments []Installment `json:"installments" gorm:"foreignKey:PlanID"`
}

// Installment is one line of an installment plan. Formula examples:
// "Net / 4", "Total * 0.25 - Discount".
type Installment struct {
	gorm.Model
	PlanID  uint   `json:"planId" gorm:"not null;index"`
	Month   string `json:"month" gorm:"size:20;not null"` // English month name
	Day     int    `json:"day" gorm:"not null"`
	Formula string `json:"formula" gorm:"not null"`
}
