package model

import "time"

// EnrollmentStatus tracks a student's standing in a course.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Enrollment links a student to a course with progress tracking.
type Enrollment struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	CourseID  uint             `json:"course_id" gorm:"not null;index"`
	Status    EnrollmentStatus `json:"status" gorm:"size:20;default:'active'"`
	Progress  float64          `json:"progress" gorm:"default:0"`
	Completed bool             `json:"completed" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
