package models

import (
	"time"
)

// SavedPost bookmarks a help request for a user.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_saved_user_post"`
	PostID    uint      `json:"postId" gorm:"not null;uniqueIndex:idx_saved_user_post"`
	Post      Post      `json:"post" gorm:"foreignKey:PostID"`
}
