package model

import "time"

// Role classifies a user's privileges. It is a closed set: every
// authorization decision goes through the predicates in internal/auth
// rather than ad hoc string comparisons.
type Role string

const (
	// RoleUser is the default role for registered users.
	RoleUser Role = "USER"
	// RoleAdmin grants access to user administration endpoints.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account with credentials and lockout state.
type User struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Username       string `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email          string `json:"email" gorm:"uniqueIndex;size:100;not null"`
	HashedPassword string `json:"-" gorm:"size:100;not null"` // Never expose in JSON
	IsActive       bool   `json:"is_active" gorm:"default:true"`
	IsSuperuser    bool   `json:"is_superuser" gorm:"default:false"`
	Role           Role   `json:"role" gorm:"size:10;default:'USER';index"`
	EmailVerified  bool   `json:"email_verified" gorm:"default:false"`

	// Security fields
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0;not null"`
	AccountLocked       bool       `json:"-" gorm:"default:false;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Courses     []Course     `json:"courses,omitempty" gorm:"foreignKey:InstructorID"`
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:UserID"`
}
