// campus-crm/models/notice.go
package models

import "gorm.io/gorm"

// Notice is a post on the school noticeboard.
type Notice struct {
	gorm.Model
	AuthorID uint   `json:"authorId" gorm:"not null"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID"`
	Title    string `json:"title" gorm:"not null"`
	Body     string `json:"body"`
	Audience string `json:"audience" gorm:"size:30;default:'all'"` // all | teachers | admins
}
