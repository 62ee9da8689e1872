package models

import "time"

// TwoFactorChallenge — одноразовая запись второго фактора: opaque-токен,
// шестизначный код и срок действия. Живая запись для пользователя всегда
// одна (replace при повторном логине, delete при verify/истечении).
type TwoFactorChallenge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"token"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
