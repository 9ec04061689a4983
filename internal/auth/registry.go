package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry holds one Core per browser so that concurrent requests from the
// same browser share a session and its operation slot.
type Registry struct {
	newCore func() *Core
	log     *zap.Logger
	now     func() time.Time

	mu    sync.Mutex
	cores map[string]*entry
}

type entry struct {
	core     *Core
	lastSeen time.Time
}

func NewRegistry(newCore func() *Core, log *zap.Logger) *Registry {
	return &Registry{
		newCore: newCore,
		log:     log,
		now:     time.Now,
		cores:   map[string]*entry{},
	}
}

// Acquire returns the Core of clientID. A new Core is restored from storage
// before it is returned; a known one is synced with it.
func (r *Registry) Acquire(ctx context.Context, clientID string) *Core {
	r.mu.Lock()
	e, ok := r.cores[clientID]
	if !ok {
		e = &entry{core: r.newCore()}
		r.cores[clientID] = e
	}
	e.lastSeen = r.now()
	r.mu.Unlock()

	if !ok {
		e.core.Restore(ctx)
	} else {
		e.core.Sync(ctx)
	}
	return e.core
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cores)
}

// Sweep forgets Cores not used for idle. Their browsers get a freshly
// restored Core on the next request.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.cores {
		if e.lastSeen.Before(cutoff) {
			delete(r.cores, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(idle); n > 0 {
				r.log.Debug("swept idle sessions", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}
