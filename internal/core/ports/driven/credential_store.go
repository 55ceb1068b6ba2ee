package driven

import (
	"context"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
)

// CredentialStore handles shop, manager and attendant persistence (PostgreSQL).
// Implementations return domain.ErrAlreadyExists on unique key violations,
// domain.ErrNotFound on missing rows and wrap everything else in domain.ErrStore.
type CredentialStore interface {
	// CreateShop inserts a shop; the email must be unique
	CreateShop(ctx context.Context, shop *domain.Shop) error

	// GetShopByEmail retrieves a shop by email
	GetShopByEmail(ctx context.Context, email string) (*domain.Shop, error)

	// CreateManager inserts a manager into the pool
	CreateManager(ctx context.Context, manager *domain.Manager) error

	// ListManagersByLookupKey returns the managers whose lookup key equals
	// lookupKey, oldest first
	ListManagersByLookupKey(ctx context.Context, lookupKey string) ([]*domain.Manager, error)

	// UpdateManagerPassword replaces a manager's password hash and lookup key
	UpdateManagerPassword(ctx context.Context, id, passwordHash, lookupKey string) error

	// CreateAttendant inserts an attendant; the name must be unique
	CreateAttendant(ctx context.Context, attendant *domain.Attendant) error

	// GetAttendantByName retrieves an attendant by name
	GetAttendantByName(ctx context.Context, name string) (*domain.Attendant, error)
}

// TxManager scopes a unit of work to one transaction.
// fn receives a store bound to the transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(store CredentialStore) error) error
}
