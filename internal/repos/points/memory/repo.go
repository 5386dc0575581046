package memory

import (
	"sync"
	"time"

	"github.com/fastprodman/pointwallet/internal/repos/points"
)

// Repo is the in-memory implementation of points.PointRepository. Both
// tables sit behind one RWMutex; every exported call is safe on its own,
// cross-call atomicity belongs to the caller.
type Repo struct {
	mu       sync.RWMutex
	balances map[int64]points.UserPoint
	history  []points.PointHistory
	nextID   int64 // next history id, guarded by mu

	now func() int64 // wall clock in ms since epoch
}

// Option tweaks a Repo, mainly so tests can pin the clock.
type Option func(*Repo)

// WithClock replaces the wall clock. now must return milliseconds since
// the Unix epoch.
func WithClock(now func() int64) Option {
	return func(r *Repo) { r.now = now }
}

func New(opts ...Option) *Repo {
	r := &Repo{
		balances: make(map[int64]points.UserPoint),
		nextID:   1,
		now:      func() int64 { return time.Now().UnixMilli() },
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}
