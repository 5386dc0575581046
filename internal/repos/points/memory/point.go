package memory

import (
	"github.com/fastprodman/pointwallet/internal/repos/points"
)

// GetPoint returns the stored snapshot, or a zero balance stamped with the
// current time for a user that has never been written. The zero snapshot is
// not inserted.
func (r *Repo) GetPoint(userID int64) points.UserPoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	up, ok := r.balances[userID]
	if !ok {
		return points.UserPoint{ID: userID, Point: 0, UpdateMillis: r.now()}
	}

	return up
}

// InsertOrUpdate writes the balance and returns the fresh snapshot.
func (r *Repo) InsertOrUpdate(userID int64, newPoint int64) points.UserPoint {
	r.mu.Lock()
	defer r.mu.Unlock()

	up := points.UserPoint{
		ID:           userID,
		Point:        newPoint,
		UpdateMillis: r.now(),
	}
	r.balances[userID] = up

	return up
}
