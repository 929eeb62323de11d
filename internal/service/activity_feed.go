package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medisafe/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	activityFeedKey     = "activity:feed"
	activityFeedHeadKey = "activity:feed:head"

	DefaultActivityFeedSize    = 200
	DefaultActivityDedupWindow = 2 * time.Second
)

// appendActivityScript pushes an event unless the newest one has the same
// fingerprint and is within the dedup window, then caps the list.
//
// KEYS[1] feed list, KEYS[2] head hash
// ARGV[1] fingerprint, ARGV[2] event time (ms), ARGV[3] window (ms), ARGV[4] payload, ARGV[5] capacity
// Returns 1 when appended, 0 when skipped as a duplicate.
var appendActivityScript = redis.NewScript(`
	local fp = redis.call('HGET', KEYS[2], 'fp')
	local ts = tonumber(redis.call('HGET', KEYS[2], 'ts') or '0')
	local gap = tonumber(ARGV[2]) - ts
	if gap < 0 then
		gap = -gap
	end
	if fp == ARGV[1] and gap < tonumber(ARGV[3]) then
		return 0
	end
	redis.call('LPUSH', KEYS[1], ARGV[4])
	redis.call('LTRIM', KEYS[1], 0, tonumber(ARGV[5]) - 1)
	redis.call('HSET', KEYS[2], 'fp', ARGV[1], 'ts', ARGV[2])
	return 1
`)

// ActivityFeed is the bounded log of recent events shown to administrators.
// Appends and trimming happen in one Lua call so concurrent writers never exceed the capacity.
type ActivityFeed struct {
	redisClient *redis.Client
	log         *logrus.Logger
	capacity    int
	window      time.Duration
}

func NewActivityFeed(redisClient *redis.Client, log *logrus.Logger, capacity int, window time.Duration) *ActivityFeed {
	if capacity <= 0 {
		capacity = DefaultActivityFeedSize
	}
	if window <= 0 {
		window = DefaultActivityDedupWindow
	}
	return &ActivityFeed{
		redisClient: redisClient,
		log:         log,
		capacity:    capacity,
		window:      window,
	}
}

// Append records event and reports whether it was stored (false for a duplicate)
func (f *ActivityFeed) Append(ctx context.Context, event entity.ActivityEvent) (bool, error) {
	if event.Date.IsZero() {
		event.Date = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("marshal activity event: %w", err)
	}

	result, err := appendActivityScript.Run(ctx, f.redisClient,
		[]string{activityFeedKey, activityFeedHeadKey},
		event.Fingerprint(),
		event.Date.UnixMilli(),
		f.window.Milliseconds(),
		string(payload),
		f.capacity,
	).Int()
	if err != nil {
		f.log.Warnf("Failed to append activity event: %+v", err)
		return false, fmt.Errorf("lua append activity: %w", err)
	}

	return result == 1, nil
}

// Record appends event and swallows failures
func (f *ActivityFeed) Record(ctx context.Context, event entity.ActivityEvent) {
	if _, err := f.Append(ctx, event); err != nil {
		f.log.Warnf("Activity event dropped: %s", event.Summary)
	}
}

// Recent returns up to limit events, newest first
func (f *ActivityFeed) Recent(ctx context.Context, limit int) ([]entity.ActivityEvent, error) {
	if limit <= 0 || limit > f.capacity {
		limit = f.capacity
	}

	raw, err := f.redisClient.LRange(ctx, activityFeedKey, 0, int64(limit-1)).Result()
	if err != nil {
		f.log.Warnf("Failed to read activity feed: %+v", err)
		return nil, fmt.Errorf("read activity feed: %w", err)
	}

	events := make([]entity.ActivityEvent, 0, len(raw))
	for _, item := range raw {
		var event entity.ActivityEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			f.log.Warnf("Skipping malformed activity event: %+v", err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (f *ActivityFeed) Clear(ctx context.Context) error {
	if err := f.redisClient.Del(ctx, activityFeedKey, activityFeedHeadKey).Err(); err != nil {
		f.log.Warnf("Failed to clear activity feed: %+v", err)
		return fmt.Errorf("clear activity feed: %w", err)
	}
	return nil
}

// LoginEvent is the activity entry written on successful login
func LoginEvent(username, detail string, at time.Time) entity.ActivityEvent {
	return entity.ActivityEvent{
		Type:    "Auth",
		Action:  "login",
		Summary: "Login: " + username,
		Detail:  detail,
		Link:    "mod_users",
		Date:    at,
	}
}

// LogoutEvent is the activity entry written on logout
func LogoutEvent(username, detail string, at time.Time) entity.ActivityEvent {
	return entity.ActivityEvent{
		Type:    "Auth",
		Action:  "logout",
		Summary: "Logout: " + username,
		Detail:  detail,
		Link:    "mod_users",
		Date:    at,
	}
}
