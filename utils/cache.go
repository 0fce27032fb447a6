package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Public blog reads are cached in Redis as the exact JSON bytes that were
// served. Every blog write invalidates the whole prefix, so a stale body can
// outlive a mutation only for the duration of the request that raced it.
const (
	blogCachePrefix = "cache:blogs:"

	// BlogListKey holds the serialized body of the full blog listing.
	BlogListKey = blogCachePrefix + "list"

	blogCacheTTL   = time.Hour
	cacheOpTimeout = 2 * time.Second
)

// BlogDetailKey returns the cache key for one blog's serialized body.
func BlogDetailKey(id uint) string {
	return fmt.Sprintf("%sdetail:%d", blogCachePrefix, id)
}

// CachedBody returns the stored response bytes for key. A nil client or any
// Redis failure reads as a miss.
func CachedBody(key string) ([]byte, bool) {
	rc := GetRedis()
	if rc == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	body, err := rc.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

// StoreBody marshals payload and keeps it under key for the blog cache TTL.
func StoreBody(key string, payload any) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := rc.Set(ctx, key, body, blogCacheTTL).Err(); err != nil && Sugar != nil {
		Sugar.Warnf("blog cache store failed key=%s err=%v", key, err)
	}
}

// InvalidateBlogCache drops every cached blog body after a write.
func InvalidateBlogCache() {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	iter := rc.Scan(ctx, 0, blogCachePrefix+"*", 500).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		if Sugar != nil {
			Sugar.Warnf("blog cache scan failed: %v", err)
		}
		return
	}
	if len(keys) > 0 {
		_ = rc.Del(ctx, keys...).Err()
	}
}
