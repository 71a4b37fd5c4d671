package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix   = "profile:%d"
	AdminStatsKey      = "admin:stats"
	UnreadCountPrefix  = "unread:%d"
	SubscriptionPrefix = "subscription:%d"
)

const (
	ProfileTTL      = 5 * time.Minute
	AdminStatsTTL   = time.Minute
	UnreadCountTTL  = 30 * time.Second
	SubscriptionTTL = 5 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func UnreadCountKey(userID uint) string {
	return fmt.Sprintf(UnreadCountPrefix, userID)
}

func SubscriptionKey(userID uint) string {
	return fmt.Sprintf(SubscriptionPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidateUnreadCount(ctx context.Context, userID uint) {
	Invalidate(ctx, UnreadCountKey(userID))
}

func InvalidateSubscription(ctx context.Context, userID uint) {
	Invalidate(ctx, SubscriptionKey(userID))
}
