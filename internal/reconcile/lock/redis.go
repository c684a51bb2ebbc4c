package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ssto/pkg/platform/sentinel"
)

const (
	defaultTTL        = 10 * time.Second
	defaultRetryDelay = 25 * time.Millisecond
	keyPrefix         = "ssto:lock:signal:"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by another instance is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a per-signal lock shared by every instance pointing at the same
// Redis. The TTL bounds how long a crashed holder can block a signal.
type Redis struct {
	client     redis.Cmdable
	ttl        time.Duration
	retryDelay time.Duration
}

type RedisOption func(*Redis)

func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithRetryDelay(d time.Duration) RedisOption {
	return func(r *Redis) {
		if d > 0 {
			r.retryDelay = d
		}
	}
}

func NewRedis(client redis.Cmdable, opts ...RedisOption) *Redis {
	r := &Redis{client: client, ttl: defaultTTL, retryDelay: defaultRetryDelay}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lock polls SET NX until it wins or ctx is done.
func (r *Redis) Lock(ctx context.Context, signalID int64) (func(), error) {
	key := fmt.Sprintf("%s%d", keyPrefix, signalID)
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return nil, fmt.Errorf("lock signal %d: %w: %w", signalID, sentinel.ErrUnavailable, err)
		}
		if ok {
			return r.releaser(key, token), nil
		}

		t := time.NewTimer(r.retryDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("lock signal %d: %w: %w", signalID, sentinel.ErrUnavailable, ctx.Err())
		case <-t.C:
		}
	}
}

func (r *Redis) releaser(key, token string) func() {
	return func() {
		// Release must run even if the caller's context is already done.
		ctx, cancel := context.WithTimeout(context.Background(), r.ttl)
		defer cancel()
		// On failure the TTL reclaims the key.
		_ = releaseScript.Run(ctx, r.client, []string{key}, token).Err()
	}
}
