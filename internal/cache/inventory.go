package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// IndexFeedKey caches the rendered index feed (the parameterless request
	// only). New posts published inside the window do not invalidate it; that
	// staleness is a deliberate trade-off mirrored by IndexFeedTTL.
	IndexFeedKey = "feed:index"

	GroupKeyPrefix = "group:%s"
	UserKeyPrefix  = "user:%d"
)

const (
	IndexFeedTTL = 20 * time.Second
	GroupTTL     = 10 * time.Minute
	UserTTL      = 5 * time.Minute
)

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateIndex clears the cached index feed before its TTL expires.
func InvalidateIndex(ctx context.Context) {
	Invalidate(ctx, IndexFeedKey)
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
