package point

import "errors"

// Limits enforced by the mutation engine. The per-call cap applies to a
// single charge; the balance cap bounds the post-mutation balance.
const (
	MaxChargePerCall = 1_000_000
	MaxBalance       = 10_000_000
)

// Error kinds. Callers dispatch on the kind with errors.Is; the wrapped
// message carries the specific sub-condition and is part of the wire
// contract.
var (
	ErrInvalidUser   = errors.New("invalid user")
	ErrInvalidAmount = errors.New("invalid amount")
)
