package models

import "time"

// Post represents a social media post stored in PostgreSQL.
// AuthorID is the Firebase UID of the user who created the post; the id and
// author never change after creation.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  string    `json:"author_id" gorm:"index;not null"`
	Author    *Profile  `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	Content   string    `json:"content" gorm:"not null"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Content and RemoveImage are both optional; at least one must be supplied.
type UpdatePostRequest struct {
	Content     *string `json:"content,omitempty" validate:"omitempty,max=2000"`
	RemoveImage bool    `json:"remove_image,omitempty"`
}

// AuthorInfo is the display slice of a Profile joined into feed and comment
// responses. Username falls back to "Unknown" when the profile row is absent.
type AuthorInfo struct {
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// EnrichedPost is a post with author display fields and per-viewer engagement
// data. Counts are recomputed from the like/comment tables at read time, never
// cached. LikedByMe is only meaningful when a viewer was supplied.
type EnrichedPost struct {
	Post
	Author       AuthorInfo `json:"author"`
	LikeCount    int64      `json:"like_count"`
	CommentCount int64      `json:"comment_count"`
	LikedByMe    bool       `json:"liked_by_me"`
}

// DisplayAuthor maps an optional Profile to its display fields.
func DisplayAuthor(p *Profile) AuthorInfo {
	if p == nil {
		return AuthorInfo{Username: "Unknown"}
	}
	return AuthorInfo{Username: p.Username, AvatarURL: p.AvatarURL}
}
