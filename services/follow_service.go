package services

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mkarsten/waveline/models"
)

// FollowNotifier is told about new follow relationships.
type FollowNotifier interface {
	NotifyNewFollower(ctx context.Context, followeeID, followerID uint)
}

// FollowService maintains the follow graph consumed by feed assembly.
type FollowService struct {
	db       *gorm.DB
	notifier FollowNotifier
}

// NewFollowService creates a FollowService. notifier may be nil.
func NewFollowService(db *gorm.DB, notifier FollowNotifier) *FollowService {
	return &FollowService{db: db, notifier: notifier}
}

// Follow makes fromID follow toID. Self-follows are rejected; repeated follows
// are idempotent via the composite unique index and notify nobody twice.
func (s *FollowService) Follow(ctx context.Context, fromID, toID uint) error {
	if fromID == toID {
		return ValidationError("cannot follow yourself")
	}

	var followee models.User
	if err := s.db.WithContext(ctx).First(&followee, toID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return NotFoundError("user not found")
		}
		return InternalError("failed to load user", err)
	}

	row := models.Follow{FollowerID: fromID, FolloweeID: toID}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return InternalError("failed to create follow", res.Error)
	}

	if res.RowsAffected > 0 && s.notifier != nil {
		s.notifier.NotifyNewFollower(ctx, toID, fromID)
	}
	return nil
}

// Unfollow removes the relationship; unfollowing a stranger is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, fromID, toID uint) error {
	if err := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", fromID, toID).
		Delete(&models.Follow{}).Error; err != nil {
		return InternalError("failed to delete follow", err)
	}
	return nil
}

// FollowingIDs returns the ids userID follows.
func (s *FollowService) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, InternalError("failed to load following", err)
	}
	return ids, nil
}

// IsFollowing reports whether fromID follows toID.
func (s *FollowService) IsFollowing(ctx context.Context, fromID, toID uint) (bool, error) {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", fromID, toID).
		Count(&cnt).Error; err != nil {
		return false, InternalError("failed to check follow", err)
	}
	return cnt > 0, nil
}
