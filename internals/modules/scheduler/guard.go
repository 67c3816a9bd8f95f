package scheduler

import (
	"context"
	"sync"
)

// Guard keeps at most one probe per check in flight.
type Guard interface {
	TryAcquire(ctx context.Context, checkID string) (bool, error)
	Release(ctx context.Context, checkID string)
}

// LocalGuard is a Guard for a single process.
type LocalGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{inflight: make(map[string]struct{})}
}

func (g *LocalGuard) TryAcquire(_ context.Context, checkID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[checkID]; busy {
		return false, nil
	}
	g.inflight[checkID] = struct{}{}
	return true, nil
}

func (g *LocalGuard) Release(_ context.Context, checkID string) {
	g.mu.Lock()
	delete(g.inflight, checkID)
	g.mu.Unlock()
}
