// Package keymutex provides per-key mutual exclusion with fair (FIFO)
// hand-off and context-aware acquisition. Locks are created lazily on first
// use and never evicted; the per-key footprint is a few words.
package keymutex

import (
	"context"
	"sync"
)

// KeyMutex hands out one canonical lock per key. The zero value is ready to
// use.
type KeyMutex struct {
	locks sync.Map // int64 -> *fairMutex
}

// Acquire blocks until the caller holds the lock for key, in arrival order
// behind any earlier waiters. If ctx is done before the lock is granted,
// Acquire returns ctx.Err() and the caller holds nothing.
func (k *KeyMutex) Acquire(ctx context.Context, key int64) error {
	return k.lockFor(key).acquire(ctx)
}

// Release hands the lock for key to the oldest waiter, or marks it free.
// The caller must hold the lock.
func (k *KeyMutex) Release(key int64) {
	k.lockFor(key).release()
}

func (k *KeyMutex) lockFor(key int64) *fairMutex {
	m, ok := k.locks.Load(key)
	if !ok {
		// LoadOrStore makes the insert atomic: every caller for the same
		// key ends up with the same fairMutex.
		m, _ = k.locks.LoadOrStore(key, new(fairMutex))
	}

	return m.(*fairMutex)
}

// fairMutex is a FIFO mutex. Ownership transfers directly to the head of
// the wait queue on release, so a late arriver can never barge past a
// waiter.
type fairMutex struct {
	mu     sync.Mutex
	locked bool
	queue  []chan struct{}
}

func (m *fairMutex) acquire(ctx context.Context) error {
	m.mu.Lock()

	if !m.locked && len(m.queue) == 0 {
		m.locked = true
		m.mu.Unlock()

		return nil
	}

	grant := make(chan struct{})
	m.queue = append(m.queue, grant)
	m.mu.Unlock()

	select {
	case <-grant:
		return nil
	case <-ctx.Done():
		m.mu.Lock()

		for i, ch := range m.queue {
			if ch == grant {
				m.queue = append(m.queue[:i], m.queue[i+1:]...)
				m.mu.Unlock()

				return ctx.Err()
			}
		}

		// Not in the queue anymore: release raced with cancellation and
		// already handed us the lock. Give it back before reporting.
		m.mu.Unlock()
		m.release()

		return ctx.Err()
	}
}

func (m *fairMutex) release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) > 0 {
		grant := m.queue[0]
		m.queue = m.queue[1:]
		// locked stays true; ownership moves to the head waiter.
		close(grant)

		return
	}

	m.locked = false
}
