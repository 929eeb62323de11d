package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"medisafe/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeed(t *testing.T, capacity int, window time.Duration) (*ActivityFeed, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewActivityFeed(client, newTestLogger(), capacity, window), mr
}

func TestActivityFeedSkipsDuplicateWithinWindow(t *testing.T) {
	feed, _ := newTestFeed(t, 10, 2*time.Second)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	stored, err := feed.Append(ctx, LoginEvent("drcruz", "doctor", at))
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = feed.Append(ctx, LoginEvent("drcruz", "doctor", at.Add(500*time.Millisecond)))
	require.NoError(t, err)
	assert.False(t, stored, "same event inside the window is a duplicate")

	stored, err = feed.Append(ctx, LoginEvent("drcruz", "doctor", at.Add(3*time.Second)))
	require.NoError(t, err)
	assert.True(t, stored, "same event after the window is stored")

	events, err := feed.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestActivityFeedOnlyComparesNewestEvent(t *testing.T) {
	feed, _ := newTestFeed(t, 10, 2*time.Second)
	ctx := context.Background()
	at := time.Now()

	_, err := feed.Append(ctx, LoginEvent("ana", "", at))
	require.NoError(t, err)
	_, err = feed.Append(ctx, LogoutEvent("ana", "", at))
	require.NoError(t, err)
	stored, err := feed.Append(ctx, LoginEvent("ana", "", at))
	require.NoError(t, err)

	assert.True(t, stored)
	events, err := feed.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Login: ana", events[0].Summary)
	assert.Equal(t, "Logout: ana", events[1].Summary)
}

func TestActivityFeedNeverExceedsCapacity(t *testing.T) {
	feed, mr := newTestFeed(t, 5, time.Second)
	ctx := context.Background()
	at := time.Now()

	for i := 0; i < 12; i++ {
		_, err := feed.Append(ctx, entity.ActivityEvent{
			Type:    "Auth",
			Action:  "login",
			Summary: fmt.Sprintf("Login: user%d", i),
			Date:    at,
		})
		require.NoError(t, err)
	}

	items, err := mr.List(activityFeedKey)
	require.NoError(t, err)
	assert.Len(t, items, 5)

	events, err := feed.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Login: user11", events[0].Summary)
	assert.Equal(t, "Login: user10", events[1].Summary)
}

func TestActivityFeedClear(t *testing.T) {
	feed, mr := newTestFeed(t, 5, time.Second)
	ctx := context.Background()

	_, err := feed.Append(ctx, LoginEvent("ana", "", time.Now()))
	require.NoError(t, err)

	require.NoError(t, feed.Clear(ctx))
	assert.False(t, mr.Exists(activityFeedKey))
	assert.False(t, mr.Exists(activityFeedHeadKey))

	stored, err := feed.Append(ctx, LoginEvent("ana", "", time.Now()))
	require.NoError(t, err)
	assert.True(t, stored, "clearing also forgets the newest fingerprint")
}

func TestActivityFeedRecordSwallowsErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	feed := NewActivityFeed(client, newTestLogger(), 5, time.Second)

	_, err := feed.Append(context.Background(), LoginEvent("ana", "", time.Now()))
	assert.Error(t, err)
	assert.NotPanics(t, func() {
		feed.Record(context.Background(), LoginEvent("ana", "", time.Now()))
	})
}
