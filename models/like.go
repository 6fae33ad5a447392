package models

import "time"

// Likeable is implemented by entities whose likes behave as a set of user ids.
// The composite unique indexes on the like tables keep the set free of duplicates
// even under concurrent toggles.
type Likeable interface {
	EntityID() uint
	EntityOwner() uint
	EntityKind() string
	// NewLike returns a fresh like row binding this entity to userID.
	NewLike(userID uint) interface{}
	// LikeFilter returns the where clause selecting userID's like on this entity.
	LikeFilter(userID uint) (string, []interface{})
}

// PostLike is one user's like on a post.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like_pair" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like_pair;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike is one user's like on a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_pair" json:"comment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_pair;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
