package models

import (
	"time"
)

type UserPreference struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	UserID               uint      `json:"userId" gorm:"not null;uniqueIndex"`
	Theme                string    `gorm:"default:system" json:"theme"` // "light", "dark" or "system"
	Language             string    `gorm:"default:en" json:"language"`
	NotificationsEnabled bool      `gorm:"default:true" json:"notifications_enabled"`
	EmailNotifications   bool      `gorm:"default:true" json:"email_notifications"`
	PushNotifications    bool      `gorm:"default:false" json:"push_notifications"`
}
