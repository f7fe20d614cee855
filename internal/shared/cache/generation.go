package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Generation reads a generation counter. A missing counter is generation 0.
// ok is false when Redis could not be read; callers then bypass the cache.
func Generation(ctx context.Context, rdb *redis.Client, key string) (gen int64, ok bool) {
	n, err := rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bump advances the counter. Entries stored under older generations are
// never read again and age out with their TTL, so a reader that loaded stale
// rows before the bump cannot publish them to later readers.
func Bump(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Incr(ctx, key).Err()
}

// VersionedKey builds "<prefix>:v<gen>:<suffix>".
func VersionedKey(prefix string, gen int64, suffix string) string {
	return prefix + ":v" + strconv.FormatInt(gen, 10) + ":" + suffix
}
