package models

import "time"

type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string  `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`

	// Менеджер опционален; при удалении пользователя его проекты
	// удаляются каскадом (см. repo.UserStore.Delete).
	ProjectManagerID *uint `gorm:"index" json:"project_manager_id"`
}
