package redisstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const releaseIfOwnerScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

var releaseIfOwner = redis.NewScript(releaseIfOwnerScript)

// InflightGuard marks a check as being probed so that overlapping scheduler
// cycles, possibly on other instances, skip it. The marker expires after ttl
// in case the owner dies before releasing it.
type InflightGuard struct {
	client *Client
	ttl    time.Duration

	mu     sync.Mutex
	tokens map[string]string // checkID -> token of the marker this instance holds
}

func NewInflightGuard(client *Client, ttl time.Duration) *InflightGuard {
	return &InflightGuard{client: client, ttl: ttl, tokens: make(map[string]string)}
}

func inflightKey(checkID string) string {
	return fmt.Sprintf("monitor:inflight:%s", checkID)
}

func (g *InflightGuard) TryAcquire(ctx context.Context, checkID string) (bool, error) {
	token := uuid.NewString()

	ok, err := g.client.rdb.SetNX(ctx, inflightKey(checkID), token, g.ttl).Result()
	if err != nil || !ok {
		return false, err
	}

	g.mu.Lock()
	g.tokens[checkID] = token
	g.mu.Unlock()
	return true, nil
}

// Release removes the marker only while it still carries this instance's
// token; a marker taken over after expiry belongs to someone else.
func (g *InflightGuard) Release(ctx context.Context, checkID string) {
	g.mu.Lock()
	token, held := g.tokens[checkID]
	delete(g.tokens, checkID)
	g.mu.Unlock()

	if !held {
		return
	}

	_ = retry(ctx, 2, func() error {
		return releaseIfOwner.Run(ctx, g.client.rdb, []string{inflightKey(checkID)}, token).Err()
	})
}
