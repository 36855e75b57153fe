package redisad

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// FixedWindow is a per-key fixed-window counter: up to limit hits per window,
// then rejection until the window key expires. Used for the auth endpoints
// (20 requests per 15 minutes per client address).
type FixedWindow struct {
	c      *redis.Client
	limit  int64
	window time.Duration
}

func NewFixedWindow(c *redis.Client, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{c: c, limit: int64(limit), window: window}
}

// Allow reports whether key may proceed. Redis being down fails open: a
// throttle outage should not lock everyone out of login.
func (l *FixedWindow) Allow(ctx context.Context, key string) bool {
	rkey := fmt.Sprintf("ratelimit:%s", key)

	pipe := l.c.TxPipeline()
	incr := pipe.Incr(ctx, rkey)
	pipe.ExpireNX(ctx, rkey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, failing open")
		return true
	}
	return incr.Val() <= l.limit
}
