package models

// Class represents one section of a grade, e.g. grade 7 section "B".
type Class struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Grade       int               `gorm:"not null" json:"grade"`
	Section     string            `gorm:"size:3;not null" json:"section"`
	Language    string            `gorm:"size:50" json:"language"`
	Assignments []ClassAssignment `json:"assignments"`
}

// ClassResponse is the API shape for class listings.
type ClassResponse struct {
	ID           uint     `json:"id"`
	Grade        int      `json:"grade"`
	Section      string   `json:"section"`
	StudentCount int      `json:"student_count"`
	Language     string   `json:"language"`
	Teachers     []string `json:"teachers"`
}

// ClassInput binds the JSON payload for creating or updating a class.
type ClassInput struct {
	Grade       int    `json:"grade" binding:"required,min=0,max=12"`
	Section     string `json:"section" binding:"required"`
	Language    string `json:"language"`
	Assignments []struct {
		TeacherID   uint   `json:"teacherId" binding:"required"`
		SubjectID   *uint  `json:"subjectId"`
		RoleInClass string `json:"roleInClass" binding:"required"`
	} `json:"assignments"`
}
