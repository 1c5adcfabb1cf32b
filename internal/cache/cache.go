// Package cache provides the view cache for profile and dashboard reads.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is the minimal cache contract the services need. Implementations must
// treat a miss as (nil, false, nil), not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ProfileKey is the cache key for a user's profile view.
func ProfileKey(userID uint64) string {
	return fmt.Sprintf("profile:%d", userID)
}

// DashboardKey is the cache key for a user's dashboard summary.
func DashboardKey(userID uint64) string {
	return fmt.Sprintf("dashboard:%d", userID)
}
