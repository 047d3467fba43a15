// campus-crm/models/subject.go
package models

import "gorm.io/gorm"

// Subject represents a taught discipline.
type Subject struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}
