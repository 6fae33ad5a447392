package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkarsten/waveline/models"
	"github.com/mkarsten/waveline/realtime"
)

// fakePusher records pushed events and simulates online status per user.
type fakePusher struct {
	online map[uint]bool
	events []realtime.Event
}

func (f *fakePusher) PushToUser(userID uint, event realtime.Event) bool {
	if !f.online[userID] {
		return false
	}
	f.events = append(f.events, event)
	return true
}

func TestSendPersistsAndPushes(t *testing.T) {
	db := setupTestDB(t)
	pusher := &fakePusher{online: map[uint]bool{}}
	svc := NewNotificationService(db, pusher)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	pusher.online[bob.ID] = true

	n := models.Notification{
		UserID:      bob.ID,
		InitiatorID: alice.ID,
		Type:        models.NotificationFollow,
		EntityID:    alice.ID,
		Message:     "alice started following you",
	}
	require.NoError(t, svc.Send(context.Background(), &n))
	require.NotZero(t, n.ID)

	require.Len(t, pusher.events, 1)
	require.Equal(t, models.NotificationFollow, pusher.events[0].Type)
	require.Equal(t, alice.ID, pusher.events[0].EntityID)
}

func TestSendKeepsRecordWhenOffline(t *testing.T) {
	db := setupTestDB(t)
	pusher := &fakePusher{online: map[uint]bool{}}
	svc := NewNotificationService(db, pusher)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	n := models.Notification{
		UserID:      bob.ID,
		InitiatorID: alice.ID,
		Type:        models.NotificationLike,
		EntityID:    7,
		Message:     "alice liked your post",
	}
	require.NoError(t, svc.Send(context.Background(), &n))
	require.Empty(t, pusher.events)

	inbox, err := svc.List(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.False(t, inbox[0].IsRead)
}

func TestSendValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, nil)

	err := svc.Send(context.Background(), &models.Notification{UserID: 1})
	require.Error(t, err)
	require.Equal(t, KindValidation, errKind(t, err))
}

func TestMarkRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, nil)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	n := models.Notification{
		UserID:      bob.ID,
		InitiatorID: alice.ID,
		Type:        models.NotificationComment,
		Message:     "alice commented on your post",
	}
	require.NoError(t, svc.Send(context.Background(), &n))

	require.NoError(t, svc.MarkRead(context.Background(), n.ID, bob.ID))

	inbox, err := svc.List(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.True(t, inbox[0].IsRead)

	// Someone else's notification looks like it does not exist.
	err = svc.MarkRead(context.Background(), n.ID, alice.ID)
	require.Error(t, err)
	require.Equal(t, KindNotFound, errKind(t, err))

	err = svc.MarkRead(context.Background(), 999, bob.ID)
	require.Error(t, err)
	require.Equal(t, KindNotFound, errKind(t, err))
}
