package models

import "time"

// Comment represents a comment on a post. Comments have no update or delete
// path.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Author    *Profile  `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// CommentWithAuthor is a comment joined with its author's display fields.
type CommentWithAuthor struct {
	Comment
	Author AuthorInfo `json:"author"`
}
