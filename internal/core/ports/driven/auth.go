package driven

import "github.com/custodia-labs/shop-auth/internal/core/domain"

// AuthAdapter handles authentication cryptographic operations.
// This does NOT handle storage - use CredentialStore and RevocationLedger for persistence.
type AuthAdapter interface {
	// Password operations
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool

	// PasswordLookupKey derives a deterministic keyed digest of password.
	// Stores index it to narrow the rows a password can match.
	PasswordLookupKey(password string) string

	// Token operations
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
