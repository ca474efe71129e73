package coordinator

import (
	"context"
	"slices"
	"sync"
)

// scopeLocks serializes the persistence phase of operations that touch the
// same collection. Scopes are always acquired in sorted order so two
// operations sharing several scopes cannot deadlock.
type scopeLocks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newScopeLocks() *scopeLocks {
	return &scopeLocks{slots: make(map[string]chan struct{})}
}

func (l *scopeLocks) slot(scope string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[scope]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[scope] = ch
	}
	return ch
}

// Lock acquires every scope or none. The returned func releases them.
func (l *scopeLocks) Lock(ctx context.Context, scopes ...string) (func(), error) {
	sorted := slices.Compact(slices.Sorted(slices.Values(scopes)))

	held := make([]chan struct{}, 0, len(sorted))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, scope := range sorted {
		ch := l.slot(scope)
		select {
		case ch <- struct{}{}:
			held = append(held, ch)
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		}
	}
	return release, nil
}
