// campus-crm/models/user.go
package models

import "gorm.io/gorm"

// User represents a staff account that can sign in to the console.
type User struct {
	gorm.Model
	Login        string `json:"login" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string `json:"fullName"`
	Email        string `json:"email" gorm:"unique"`
	Phone        string `json:"phone"`
	Status       string `json:"status" gorm:"default:'active'"`
	PhotoURL     string `json:"photoUrl"`
	Roles        []Role `json:"roles" gorm:"many2many:user_roles;"`
}
