package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys
const (
	recapKeyFmt = "recap:%d"
)

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays nil
// and all cache helpers degrade to no-ops.
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when the cache is unavailable)
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (string, bool) {
	if client == nil {
		return "", false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes so repeat logins skip
// the bcrypt comparison. An email index entry is kept alongside so the
// credential entry can be dropped on password change.
func CacheAuth(ctx context.Context, email, password, userID string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, userID, 15*time.Minute)
	client.Set(ctx, "authidx:"+email, key, 15*time.Minute)
}

// InvalidateAuth removes the cached credential entry for an email. Called
// on password change/reset and account deletion so stale credentials stop
// working immediately.
func InvalidateAuth(ctx context.Context, email string) {
	if client == nil {
		return
	}
	idxKey := "authidx:" + email
	if key, err := client.Get(ctx, idxKey).Result(); err == nil {
		client.Del(ctx, key)
	}
	client.Del(ctx, idxKey)
}

// GetRecap returns a cached yearly recap payload, if any
func GetRecap(ctx context.Context, year int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(recapKeyFmt, year)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetRecap caches a yearly recap payload for 10 minutes
func SetRecap(ctx context.Context, year int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(recapKeyFmt, year), data, 10*time.Minute)
}

// InvalidateRecap drops the cached recap for a year after a report in that
// year is created or resolved
func InvalidateRecap(ctx context.Context, year int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(recapKeyFmt, year))
}
