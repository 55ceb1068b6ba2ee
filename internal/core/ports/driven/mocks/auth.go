package mocks

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
)

// Ensure MockAuthAdapter implements AuthAdapter
var _ driven.AuthAdapter = (*MockAuthAdapter)(nil)

// MockAuthAdapter is a mock implementation of AuthAdapter for testing.
// Hashes are the password with a "hashed:" prefix and tokens are
// base64-encoded JSON claims.
// NOT secure - only for testing.
type MockAuthAdapter struct {
	// HashErr, when set, is returned by HashPassword
	HashErr error

	verifyCalls atomic.Int64
}

const (
	mockHashPrefix   = "hashed:"
	mockLookupPrefix = "lookup:"
)

// NewMockAuthAdapter creates a new MockAuthAdapter
func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{}
}

// HashPassword returns the prefixed password (for testing only)
func (m *MockAuthAdapter) HashPassword(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return mockHashPrefix + password, nil
}

// VerifyPassword compares the prefixed password with hash (for testing only)
func (m *MockAuthAdapter) VerifyPassword(password, hash string) bool {
	m.verifyCalls.Add(1)
	return mockHashPrefix+password == hash
}

// VerifyCalls reports how many times VerifyPassword ran
func (m *MockAuthAdapter) VerifyCalls() int64 {
	return m.verifyCalls.Load()
}

// PasswordLookupKey returns the prefixed password (for testing only)
func (m *MockAuthAdapter) PasswordLookupKey(password string) string {
	return mockLookupPrefix + password
}

// GenerateToken creates a base64-encoded JSON token from claims
func (m *MockAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// ParseToken decodes a base64-encoded JSON token and returns claims
func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	var claims domain.TokenClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, domain.ErrTokenInvalid
	}

	return &claims, nil
}
