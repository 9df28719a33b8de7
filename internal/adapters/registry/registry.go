// Package registry owns the refresh-token -> email mapping. A refresh
// token is opaque, single-use and bound to exactly one account; redeeming
// it removes the entry, so a value can never be redeemed twice.
package registry

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a token is unknown, expired or already
// redeemed. Callers cannot distinguish the three cases.
var ErrNotFound = errors.New("refresh token not found")

// TokenRegistry maps refresh-token values to the email they authorize.
type TokenRegistry interface {
	// Store inserts or overwrites the mapping for token.
	Store(ctx context.Context, token, email string) error
	// Redeem atomically removes the mapping and returns the owning email.
	// Two concurrent redemptions of the same token yield exactly one
	// success; the loser gets ErrNotFound.
	Redeem(ctx context.Context, token string) (string, error)
}

// Pruner is implemented by registries that need periodic cleanup of
// expired entries (the Redis implementation expires keys natively).
type Pruner interface {
	PruneExpired() int
}
