package point

import (
	"context"
	"fmt"

	"github.com/fastprodman/pointwallet/internal/repos/points"
	"github.com/fastprodman/pointwallet/pkg/keymutex"
)

// PointService executes charge and use as atomic per-user operations and
// answers lock-free reads. Mutations on one user are serialized through a
// fair per-user lock; mutations on distinct users run fully in parallel.
type PointService struct {
	repo  points.PointRepository
	locks keymutex.KeyMutex
}

func New(repo points.PointRepository) *PointService {
	return &PointService{repo: repo}
}

// GetPoint returns the user's current snapshot. It takes no user lock, so
// it may observe a balance from a commit whose history append it cannot see
// yet; consistency holds at commit boundaries.
func (s *PointService) GetPoint(ctx context.Context, userID int64) (points.UserPoint, error) {
	err := validateUserID(userID)
	if err != nil {
		return points.UserPoint{}, err
	}

	return s.repo.GetPoint(userID), nil
}

// GetHistory returns the user's ledger entries in commit order, lock-free.
func (s *PointService) GetHistory(ctx context.Context, userID int64) ([]points.PointHistory, error) {
	err := validateUserID(userID)
	if err != nil {
		return nil, err
	}

	return s.repo.GetHistory(userID), nil
}

// Charge increases the user's balance by amount.
//
// Argument-only checks run before the lock so malformed requests never
// contend with other callers; the balance-cap check runs inside the lock
// against the freshly read balance. Balance write and history append happen
// back to back in the critical section, which makes the pair atomic for
// every other mutator of this user.
func (s *PointService) Charge(ctx context.Context, userID, amount int64) (points.UserPoint, error) {
	err := validateUserID(userID)
	if err != nil {
		return points.UserPoint{}, err
	}

	if amount < 0 {
		return points.UserPoint{}, fmt.Errorf("%w: Invalid amount. Amount must be greater than 0. Requested amount: %d", ErrInvalidAmount, amount)
	}

	if amount > MaxChargePerCall {
		return points.UserPoint{}, fmt.Errorf("%w: Max allowed charge is 1,000,000.", ErrInvalidAmount)
	}

	err = s.locks.Acquire(ctx, userID)
	if err != nil {
		return points.UserPoint{}, fmt.Errorf("acquire user lock: %w", err)
	}
	defer s.locks.Release(userID)

	current := s.repo.GetPoint(userID)

	next := current.Point + amount
	if next > MaxBalance {
		return points.UserPoint{}, fmt.Errorf("%w: Total points exceed the limit of 10,000,000.", ErrInvalidAmount)
	}

	updated := s.repo.InsertOrUpdate(userID, next)
	// History must carry the same timestamp as the balance snapshot.
	s.repo.InsertHistory(userID, amount, points.TypeCharge, updated.UpdateMillis)

	return updated, nil
}

// Use decreases the user's balance by amount. There is no per-call cap; the
// only balance-dependent rule is that the result may not go negative.
func (s *PointService) Use(ctx context.Context, userID, amount int64) (points.UserPoint, error) {
	err := validateUserID(userID)
	if err != nil {
		return points.UserPoint{}, err
	}

	if amount < 0 {
		return points.UserPoint{}, fmt.Errorf("%w: Invalid amount. Amount must be greater than 0. Requested amount: %d", ErrInvalidAmount, amount)
	}

	err = s.locks.Acquire(ctx, userID)
	if err != nil {
		return points.UserPoint{}, fmt.Errorf("acquire user lock: %w", err)
	}
	defer s.locks.Release(userID)

	current := s.repo.GetPoint(userID)

	next := current.Point - amount
	if next < 0 {
		return points.UserPoint{}, fmt.Errorf("%w: insufficient balance: have %d, requested %d", ErrInvalidAmount, current.Point, amount)
	}

	updated := s.repo.InsertOrUpdate(userID, next)
	s.repo.InsertHistory(userID, amount, points.TypeUse, updated.UpdateMillis)

	return updated, nil
}

func validateUserID(userID int64) error {
	if userID < 0 {
		return fmt.Errorf("%w: Invalid userId : %d", ErrInvalidUser, userID)
	}

	return nil
}
