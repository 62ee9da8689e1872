package models

import "time"

type WikiPage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID uint `gorm:"index;not null" json:"project_id"`
	AuthorID  uint `gorm:"index;not null" json:"author_id"`

	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
}
