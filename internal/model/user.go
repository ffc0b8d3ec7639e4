package model

import "time"

// User roles. Role is fixed at registration; there is no self-promotion path.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered portal user.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Department   string    `json:"department" gorm:"size:100"`
	JobRole      string    `json:"job_role" gorm:"size:100"`
	Role         string    `json:"role" gorm:"size:50;not null;default:'user'"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
