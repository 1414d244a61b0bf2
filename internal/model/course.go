package model

import "time"

// CourseLevel is the difficulty rating shown in the catalog.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "BEGINNER"
	LevelIntermediate CourseLevel = "INTERMEDIATE"
	LevelAdvanced     CourseLevel = "ADVANCED"
)

// Valid reports whether l is one of the known levels.
func (l CourseLevel) Valid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

// CourseStatus tracks a course through its publication lifecycle.
type CourseStatus string

const (
	StatusDraft     CourseStatus = "DRAFT"
	StatusPublished CourseStatus = "PUBLISHED"
	StatusArchived  CourseStatus = "ARCHIVED"
)

// Course is a unit of instruction owned by an instructor.
type Course struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Title         string       `json:"title" gorm:"size:100;not null"`
	Description   string       `json:"description" gorm:"type:text"`
	InstructorID  uint         `json:"instructor_id" gorm:"not null;index"`
	DurationWeeks int          `json:"duration_weeks" gorm:"not null"`
	Level         CourseLevel  `json:"level" gorm:"size:20;not null"`
	Category      string       `json:"category" gorm:"size:50;not null"`
	Status        CourseStatus `json:"status" gorm:"size:20;default:'DRAFT';index"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// Relations
	Instructor   *User         `json:"-" gorm:"foreignKey:InstructorID"`
	Enrollments  []Enrollment  `json:"enrollments,omitempty" gorm:"foreignKey:CourseID"`
	TextContents []TextContent `json:"text_contents,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
