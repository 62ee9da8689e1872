package models

import "time"

type UserRole string

const (
	RoleAdmin          UserRole = "ADMIN"
	RoleProjectManager UserRole = "PROJECT_MANAGER"
	RoleStandardUser   UserRole = "STANDARD_USER"
	RoleViewer         UserRole = "VIEWER"
)

// ValidRole проверяет значение роли из запроса.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleStandardUser, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email            string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName         string   `gorm:"size:255;not null" json:"full_name"`
	HashedPassword   string   `gorm:"size:255;not null" json:"-"`
	Role             UserRole `gorm:"size:32;not null;default:STANDARD_USER" json:"role"`
	IsActive         bool     `gorm:"not null;default:true" json:"is_active"`
	TwoFactorEnabled bool     `gorm:"not null;default:false" json:"two_factor_enabled"`
}
