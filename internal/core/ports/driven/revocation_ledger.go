package driven

import (
	"context"
	"time"
)

// RevocationLedger is a permanent denylist of token ids.
// expiresAt is the revoked token's own expiry. Implementations record it but
// keep every entry unless expiry has been explicitly enabled.
type RevocationLedger interface {
	// Revoke records tokenID. Revoking an already revoked id is a no-op.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether tokenID has been revoked
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ExpiredRevocationPruner is implemented by ledgers that keep entries until
// told to drop them. Nothing calls it unless ledger expiry is enabled.
type ExpiredRevocationPruner interface {
	// PruneExpired deletes entries whose tokens expired before the cutoff
	// and returns the count
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}
