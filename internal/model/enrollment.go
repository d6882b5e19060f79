package model

import "time"

// Enrollment is created once per (student, course). Course fields are
// denormalized for list display.
// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	StudentID   string    `gorm:"uniqueIndex:idx_enrollment_student_course;type:varchar(36)" json:"studentId"`
	CourseID    string    `gorm:"uniqueIndex:idx_enrollment_student_course;type:varchar(36)" json:"courseId"`
	EnrolledAt  time.Time `json:"enrolledAt"`
	CourseTitle string    `gorm:"size:255" json:"courseTitle"`
	Instructor  string    `gorm:"size:100" json:"instructor"`
	Duration    string    `gorm:"size:50" json:"duration"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
