package postgres

import (
	"context"
	"time"

	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.RevocationLedger        = (*RevocationLedger)(nil)
	_ driven.ExpiredRevocationPruner = (*RevocationLedger)(nil)
)

// RevocationLedger implements driven.RevocationLedger using PostgreSQL
type RevocationLedger struct {
	db *DB
}

// NewRevocationLedger creates a new RevocationLedger
func NewRevocationLedger(db *DB) *RevocationLedger {
	return &RevocationLedger{db: db}
}

// Revoke records a token id. Revoking twice keeps the first entry.
func (l *RevocationLedger) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (token_id, expires_at, revoked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_id) DO NOTHING
	`
	_, err := l.db.ExecContext(ctx, query, tokenID, expiresAt, time.Now())
	return mapError("revoke token", err)
}

// IsRevoked reports whether a token id has been revoked
func (l *RevocationLedger) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_id = $1)`
	var revoked bool
	if err := l.db.QueryRowContext(ctx, query, tokenID).Scan(&revoked); err != nil {
		return false, mapError("check revocation", err)
	}
	return revoked, nil
}

// PruneExpired deletes entries whose tokens expired before the cutoff
func (l *RevocationLedger) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := l.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, mapError("prune revoked tokens", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, mapError("prune revoked tokens", err)
	}
	return n, nil
}
