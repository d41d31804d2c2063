package models

import "time"

// Like represents a like on a post. The composite unique index on
// (post_id, user_id) is what makes the like toggle safe under concurrent
// requests: at most one row can ever exist per pair.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"uniqueIndex:idx_likes_post_user;not null"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_likes_post_user;not null"`
	CreatedAt time.Time `json:"created_at"`
}
