package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkarsten/waveline/models"
	"github.com/mkarsten/waveline/realtime"
	"github.com/mkarsten/waveline/utils"
)

// Pusher delivers an event to a connected user's realtime channel. The bool
// result reports delivery, which callers are free to ignore.
type Pusher interface {
	PushToUser(userID uint, event realtime.Event) bool
}

// NotificationService persists notification records and pushes them to the
// recipient's channel. The push is fire-and-forget: an offline recipient keeps
// the stored record and simply misses the live event.
type NotificationService struct {
	db     *gorm.DB
	pusher Pusher
}

// NewNotificationService creates a NotificationService. pusher may be nil.
func NewNotificationService(db *gorm.DB, pusher Pusher) *NotificationService {
	return &NotificationService{db: db, pusher: pusher}
}

// Send stores the notification and pushes it to the recipient.
func (s *NotificationService) Send(ctx context.Context, n *models.Notification) error {
	if n.UserID == 0 || n.InitiatorID == 0 || n.Type == "" {
		return ValidationError("notification needs recipient, initiator and type")
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return InternalError("failed to store notification", err)
	}

	if s.pusher != nil {
		delivered := s.pusher.PushToUser(n.UserID, realtime.Event{
			Type:     n.Type,
			Message:  n.Message,
			EntityID: n.EntityID,
		})
		if !delivered && utils.Sugar != nil {
			utils.Sugar.Debugf("notification %d not delivered, user %d offline", n.ID, n.UserID)
		}
	}
	return nil
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	var items []models.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, InternalError("failed to list notifications", err)
	}
	return items, nil
}

// MarkRead flips is_read on one of userID's notifications. Another user's
// notification is reported as not found rather than forbidden.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return InternalError("failed to mark notification read", res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundError("notification not found")
	}
	return nil
}

// NotifyLiked implements Notifier for post and comment likes.
func (s *NotificationService) NotifyLiked(ctx context.Context, target models.Likeable, initiatorID uint) {
	initiator, ok := s.loadInitiator(ctx, initiatorID)
	if !ok {
		return
	}
	s.sendQuietly(ctx, &models.Notification{
		UserID:      target.EntityOwner(),
		InitiatorID: initiatorID,
		Type:        models.NotificationLike,
		EntityID:    target.EntityID(),
		Message:     fmt.Sprintf("%s liked your %s", initiator.Username, target.EntityKind()),
	})
}

// NotifyCommented implements Notifier for new comments.
func (s *NotificationService) NotifyCommented(ctx context.Context, post *models.Post, comment *models.Comment) {
	initiator, ok := s.loadInitiator(ctx, comment.UserID)
	if !ok {
		return
	}
	s.sendQuietly(ctx, &models.Notification{
		UserID:      post.UserID,
		InitiatorID: comment.UserID,
		Type:        models.NotificationComment,
		EntityID:    post.ID,
		Message:     fmt.Sprintf("%s commented on your post", initiator.Username),
	})
}

// NotifyReplied implements Notifier for replies to comments.
func (s *NotificationService) NotifyReplied(ctx context.Context, parent *models.Comment, reply *models.Comment) {
	initiator, ok := s.loadInitiator(ctx, reply.UserID)
	if !ok {
		return
	}
	s.sendQuietly(ctx, &models.Notification{
		UserID:      parent.UserID,
		InitiatorID: reply.UserID,
		Type:        models.NotificationReply,
		EntityID:    parent.ID,
		Message:     fmt.Sprintf("%s replied to your comment", initiator.Username),
	})
}

// NotifyNewFollower implements FollowNotifier.
func (s *NotificationService) NotifyNewFollower(ctx context.Context, followeeID, followerID uint) {
	initiator, ok := s.loadInitiator(ctx, followerID)
	if !ok {
		return
	}
	s.sendQuietly(ctx, &models.Notification{
		UserID:      followeeID,
		InitiatorID: followerID,
		Type:        models.NotificationFollow,
		EntityID:    followerID,
		Message:     fmt.Sprintf("%s started following you", initiator.Username),
	})
}

func (s *NotificationService) loadInitiator(ctx context.Context, id uint) (*models.User, bool) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("notification initiator %d not loadable: %v", id, err)
		}
		return nil, false
	}
	return &user, true
}

// sendQuietly logs instead of propagating: notification failures must not fail
// the action that triggered them.
func (s *NotificationService) sendQuietly(ctx context.Context, n *models.Notification) {
	if err := s.Send(ctx, n); err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("failed to send %s notification to user %d: %v", n.Type, n.UserID, err)
		}
	}
}
