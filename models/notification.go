package models

import "time"

// Notification types.
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationReply   = "reply"
)

// Notification records an event delivered to a user. EntityID references a post
// or a comment depending on Type. Rows are immutable after creation except for
// the single unread -> read transition of IsRead.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	InitiatorID uint      `gorm:"not null" json:"initiator_id"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	EntityID    uint      `gorm:"not null" json:"entity_id"`
	Message     string    `gorm:"size:255;not null" json:"message"`
	IsRead      bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
