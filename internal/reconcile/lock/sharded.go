// Package lock serializes link commits per signal.
package lock

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"ssto/pkg/platform/sentinel"
)

// numShards spreads signal ids over a fixed set of mutexes so unrelated
// signals rarely contend.
const numShards = 128

// Sharded is an in-process per-signal lock. It is sufficient for a single
// instance; multi-instance deployments use Redis.
type Sharded struct {
	shards [numShards]sync.Mutex
}

func NewSharded() *Sharded {
	return &Sharded{}
}

// Lock blocks until the signal's shard is free. A context cancelled before
// or during acquisition yields sentinel.ErrUnavailable and no lock is held.
func (l *Sharded) Lock(ctx context.Context, signalID int64) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lock signal %d: %w: %w", signalID, sentinel.ErrUnavailable, err)
	}

	mu := &l.shards[shardFor(signalID)]
	mu.Lock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("lock signal %d: %w: %w", signalID, sentinel.ErrUnavailable, err)
	}

	var once sync.Once
	return func() { once.Do(mu.Unlock) }, nil
}

func shardFor(signalID int64) uint32 {
	return hashString(strconv.FormatInt(signalID, 10)) % numShards
}

// hashString is FNV-1a.
func hashString(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
