package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RevocationLedger = (*RevocationLedger)(nil)

// revokedPrefix namespaces revoked token ids
const revokedPrefix = "revoked:"

// RevocationLedger implements driven.RevocationLedger using Redis.
// Entries are kept forever unless WithEntryExpiry is set.
type RevocationLedger struct {
	client *redis.Client

	expire bool
	grace  time.Duration
}

// NewRevocationLedger creates a new Redis-backed RevocationLedger
func NewRevocationLedger(client *redis.Client) *RevocationLedger {
	return &RevocationLedger{client: client}
}

// WithEntryExpiry makes entries expire grace after the token they deny.
// Entries with no known or an already passed expiry stay permanent.
func (l *RevocationLedger) WithEntryExpiry(grace time.Duration) *RevocationLedger {
	if grace < 0 {
		grace = 0
	}
	l.expire = true
	l.grace = grace
	return l
}

// Revoke records a token id, with a TTL only when entry expiry is enabled
func (l *RevocationLedger) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	var ttl time.Duration
	if l.expire && !expiresAt.IsZero() {
		if remaining := time.Until(expiresAt); remaining > 0 {
			ttl = remaining + l.grace
		}
	}

	// SetNX keeps the first entry and its TTL on repeat revocations
	if err := l.client.SetNX(ctx, revokedPrefix+tokenID, time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("%w: revoke token: %v", domain.ErrStore, err)
	}
	return nil
}

// IsRevoked reports whether a token id has been revoked
func (l *RevocationLedger) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.client.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: check revocation: %v", domain.ErrStore, err)
	}
	return n > 0, nil
}

// Ping checks if Redis is reachable
func (l *RevocationLedger) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
