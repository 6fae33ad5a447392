package models

import "time"

// Comment represents a comment on a post. A reply is a comment whose ParentID
// points at another comment on the same post; replies form a tree, never a cycle,
// and the Replies slice is rebuilt from the parent back-references on read.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Replies   []Comment `gorm:"-" json:"replies,omitempty"`
	Likes     []uint    `gorm:"-" json:"likes"`
}

// EntityID implements Likeable.
func (c *Comment) EntityID() uint { return c.ID }

// EntityOwner implements Likeable.
func (c *Comment) EntityOwner() uint { return c.UserID }

// EntityKind implements Likeable.
func (c *Comment) EntityKind() string { return "comment" }

// NewLike implements Likeable.
func (c *Comment) NewLike(userID uint) interface{} {
	return &CommentLike{CommentID: c.ID, UserID: userID}
}

// LikeFilter implements Likeable.
func (c *Comment) LikeFilter(userID uint) (string, []interface{}) {
	return "comment_id = ? AND user_id = ?", []interface{}{c.ID, userID}
}
