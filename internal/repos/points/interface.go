package points

// TransactionType tags a history entry with the direction of the change.
type TransactionType string

const (
	TypeCharge TransactionType = "CHARGE"
	TypeUse    TransactionType = "USE"
)

// UserPoint is the current balance snapshot for one user.
type UserPoint struct {
	ID           int64 `json:"id"`
	Point        int64 `json:"point"`
	UpdateMillis int64 `json:"updateMillis"`
}

// PointHistory is one immutable ledger entry. IDs are monotonically
// increasing across the whole ledger, not per user.
type PointHistory struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	Amount       int64           `json:"amount"`
	Type         TransactionType `json:"type"`
	UpdateMillis int64           `json:"updateMillis"`
}

// PointRepository provides primitive access to the balance and history
// tables. Individual calls are safe under concurrent use; atomicity across
// calls (balance write + history append) is the service's responsibility.
type PointRepository interface {
	// GetPoint never fails. An unknown user reads as a zero balance
	// stamped with the current time; nothing is inserted.
	GetPoint(userID int64) UserPoint

	// GetHistory returns the user's entries in commit order, or an empty
	// slice.
	GetHistory(userID int64) []PointHistory

	// InsertOrUpdate writes the balance and returns the new snapshot.
	InsertOrUpdate(userID int64, newPoint int64) UserPoint

	// InsertHistory allocates the next global history id, appends the
	// entry and returns it.
	InsertHistory(userID int64, amount int64, txType TransactionType, updateMillis int64) PointHistory
}
