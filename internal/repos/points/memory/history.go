package memory

import (
	"github.com/fastprodman/pointwallet/internal/repos/points"
)

// GetHistory returns the user's ledger entries in commit order.
func (r *Repo) GetHistory(userID int64) []points.PointHistory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]points.PointHistory, 0)
	for _, h := range r.history {
		if h.UserID == userID {
			out = append(out, h)
		}
	}

	return out
}

// InsertHistory appends one entry under the next global id. Allocation and
// append happen under the same lock, so ids are strictly increasing in
// append order across all users.
func (r *Repo) InsertHistory(userID int64, amount int64, txType points.TransactionType, updateMillis int64) points.PointHistory {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := points.PointHistory{
		ID:           r.nextID,
		UserID:       userID,
		Amount:       amount,
		Type:         txType,
		UpdateMillis: updateMillis,
	}
	r.nextID++
	r.history = append(r.history, h)

	return h
}
