package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username          string         `gorm:"unique;not null" json:"username"`
	DisplayName       string         `json:"display_name"`
	Email             *string        `gorm:"uniqueIndex" json:"email"`
	Phone             *string        `gorm:"uniqueIndex" json:"phone"`
	Password          *string        `json:"-"` // Don't expose password in JSON
	Bio               string         `json:"bio"`
	Avatar            string         `json:"avatar"`
	Location          string         `json:"location"`
	Website           string         `json:"website"`
	DateOfBirth       *time.Time     `json:"date_of_birth"`
	Provider          string         `gorm:"default:email" json:"provider"` // "email", "phone" or "google"
	GoogleID          *string        `gorm:"uniqueIndex" json:"-"`
	ProfileVisibility string         `gorm:"default:public" json:"profile_visibility"` // "public", "friends" or "private"
	ShowEmail         bool           `gorm:"default:false" json:"show_email"`
	ShowPhone         bool           `gorm:"default:false" json:"show_phone"`
	EmailVerified     bool           `gorm:"default:false" json:"email_verified"`
	PhoneVerified     bool           `gorm:"default:false" json:"phone_verified"`
	AccountStatus     string         `gorm:"default:active" json:"account_status"`
	LastSeen          time.Time      `json:"last_seen"`
	Posts             []Post         `json:"posts,omitempty" gorm:"foreignKey:UserID"`
	SavedPosts        []SavedPost    `json:"saved_posts,omitempty" gorm:"foreignKey:UserID"`
	RefreshTokens     []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
	Preferences       UserPreference `json:"preferences,omitempty" gorm:"foreignKey:UserID"`
}
