package models

import "time"

// Post represents user-authored content. Content and MediaURL are both optional
// on their own, but at least one must be present; the post service enforces this.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"`
	MediaURL  string    `gorm:"size:512" json:"media_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
	Likes     []uint    `gorm:"-" json:"likes"`
}

// EntityID implements Likeable.
func (p *Post) EntityID() uint { return p.ID }

// EntityOwner implements Likeable.
func (p *Post) EntityOwner() uint { return p.UserID }

// EntityKind implements Likeable.
func (p *Post) EntityKind() string { return "post" }

// NewLike implements Likeable.
func (p *Post) NewLike(userID uint) interface{} {
	return &PostLike{PostID: p.ID, UserID: userID}
}

// LikeFilter implements Likeable.
func (p *Post) LikeFilter(userID uint) (string, []interface{}) {
	return "post_id = ? AND user_id = ?", []interface{}{p.ID, userID}
}
