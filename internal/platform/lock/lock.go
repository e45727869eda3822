// Package lock serializes work on a single loan account or product sequence.
package lock

import "context"

// Locker acquires an exclusive lock on key. The returned unlock func must be
// called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LoanKey is the lock key guarding mutations of one loan account.
func LoanKey(loanID string) string { return "loan:" + loanID }

// ProductKey is the lock key guarding ID allocation for one product.
func ProductKey(product string) string { return "product:" + product }
