package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkarsten/waveline/models"
)

func TestFollowSelfRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFollowService(db, nil)
	alice := seedUser(t, db, "alice")

	err := svc.Follow(context.Background(), alice.ID, alice.ID)
	require.Error(t, err)
	require.Equal(t, KindValidation, errKind(t, err))
}

func TestFollowUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFollowService(db, nil)
	alice := seedUser(t, db, "alice")

	err := svc.Follow(context.Background(), alice.ID, 999)
	require.Error(t, err)
	require.Equal(t, KindNotFound, errKind(t, err))
}

func TestFollowIdempotent(t *testing.T) {
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewFollowService(db, notifier)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, svc.Follow(context.Background(), alice.ID, bob.ID))
	require.NoError(t, svc.Follow(context.Background(), alice.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
	// Only the first follow notifies.
	require.Equal(t, 1, notifier.followed)

	following, err := svc.FollowingIDs(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{bob.ID}, following)

	ok, err := svc.IsFollowing(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// The relationship is directional.
	ok, err = svc.IsFollowing(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUnfollow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFollowService(db, nil)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, svc.Follow(context.Background(), alice.ID, bob.ID))
	require.NoError(t, svc.Unfollow(context.Background(), alice.ID, bob.ID))

	ok, err := svc.IsFollowing(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, ok)

	// Unfollowing someone never followed is a no-op.
	require.NoError(t, svc.Unfollow(context.Background(), alice.ID, bob.ID))
}
