package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHubRegisterAndPush(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient(hub, nil, 1)
	hub.Register <- client
	require.Eventually(t, func() bool { return hub.Connected(1) }, time.Second, 5*time.Millisecond)

	event := Event{Type: "like", Message: "bob liked your post", EntityID: 42}
	require.True(t, hub.PushToUser(1, event))

	select {
	case got := <-client.send:
		require.Equal(t, event, got)
	case <-time.After(time.Second):
		t.Fatal("event never reached the client buffer")
	}

	// Nobody is connected for user 2.
	require.False(t, hub.PushToUser(2, event))
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	first := NewClient(hub, nil, 7)
	second := NewClient(hub, nil, 7)
	hub.Register <- first
	hub.Register <- second
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	event := Event{Type: "comment", Message: "hello"}
	require.True(t, hub.PushToUser(7, event))
	require.Equal(t, event, <-first.send)
	require.Equal(t, event, <-second.send)

	hub.Unregister <- first
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	require.True(t, hub.Connected(7))

	hub.Unregister <- second
	require.Eventually(t, func() bool { return !hub.Connected(7) }, time.Second, 5*time.Millisecond)
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient(hub, nil, 3)
	hub.Register <- client
	require.Eventually(t, func() bool { return hub.Connected(3) }, time.Second, 5*time.Millisecond)

	hub.Unregister <- client
	select {
	case _, open := <-client.send:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel never closed")
	}

	// Repeated unregister of the same client must not panic or double-close.
	hub.Unregister <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := NewClient(hub, nil, 9)
	hub.Register <- client
	require.Eventually(t, func() bool { return hub.Connected(9) }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, open := <-client.send
	require.False(t, open)
	require.Zero(t, hub.ClientCount())
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient(hub, nil, 5)
	hub.Register <- client
	require.Eventually(t, func() bool { return hub.Connected(5) }, time.Second, 5*time.Millisecond)

	// Nothing drains the channel, so pushes succeed until the buffer fills.
	for i := 0; i < cap(client.send); i++ {
		require.True(t, hub.PushToUser(5, Event{Type: "like", EntityID: uint(i)}))
	}
	require.False(t, hub.PushToUser(5, Event{Type: "like"}))
}
