package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
)

// Ensure MockRevocationLedger implements RevocationLedger
var _ driven.RevocationLedger = (*MockRevocationLedger)(nil)

// MockRevocationLedger is an in-memory RevocationLedger for testing
type MockRevocationLedger struct {
	mu      sync.RWMutex
	revoked map[string]domain.RevokedToken
	err     error
}

// NewMockRevocationLedger creates a new MockRevocationLedger
func NewMockRevocationLedger() *MockRevocationLedger {
	return &MockRevocationLedger{
		revoked: make(map[string]domain.RevokedToken),
	}
}

// SetError makes every subsequent call return err
func (m *MockRevocationLedger) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Len returns the number of revoked token ids
func (m *MockRevocationLedger) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.revoked)
}

func (m *MockRevocationLedger) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.revoked[tokenID]; ok {
		return nil
	}
	m.revoked[tokenID] = domain.RevokedToken{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now(),
	}
	return nil
}

func (m *MockRevocationLedger) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}
