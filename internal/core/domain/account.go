package domain

import "time"

// DefaultManagerPassword seeds the manager created with every shop.
// It is returned to the registering caller so they can change it.
const DefaultManagerPassword = "123456"

// Shop is a registered shop account. Identity fields never change after registration.
type Shop struct {
	ID           string    `json:"id"`
	ShopName     string    `json:"shop_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
}

// Manager is a member of the global manager pool.
// Managers carry no identifier visible to callers; any stored hash that
// verifies the presented password authenticates. LookupKey is the keyed
// digest of the current password and selects the candidates to verify.
type Manager struct {
	ID           string    `json:"id"`
	PasswordHash string    `json:"-"`
	LookupKey    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Attendant is a shop attendant account. Name is unique.
type Attendant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RevokedToken records a token id that must be rejected.
// ExpiresAt is the token's own expiry. Entries are kept unless ledger
// expiry is switched on, in which case they may go once ExpiresAt passes.
type RevokedToken struct {
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
	RevokedAt time.Time `json:"revoked_at"`
}
