package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.CredentialStore = (*CredentialStore)(nil)
	_ driven.TxManager       = (*CredentialStore)(nil)
)

// CredentialStore implements driven.CredentialStore using PostgreSQL
type CredentialStore struct {
	db *DB
	q  querier
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(db *DB) *CredentialStore {
	return &CredentialStore{db: db, q: db.DB}
}

// WithinTx runs fn against a store bound to a single transaction
func (s *CredentialStore) WithinTx(ctx context.Context, fn func(store driven.CredentialStore) error) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		return fn(&CredentialStore{db: s.db, q: tx})
	})
}

// CreateShop inserts a shop
func (s *CredentialStore) CreateShop(ctx context.Context, shop *domain.Shop) error {
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO shops (id, shop_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.q.ExecContext(ctx, query,
		shop.ID, shop.ShopName, shop.Email, shop.PasswordHash, shop.CreatedAt,
	)
	return mapError("create shop", err)
}

// GetShopByEmail retrieves a shop by email
func (s *CredentialStore) GetShopByEmail(ctx context.Context, email string) (*domain.Shop, error) {
	query := `
		SELECT id, shop_name, email, password_hash, created_at
		FROM shops
		WHERE email = $1
	`
	var shop domain.Shop
	err := s.q.QueryRowContext(ctx, query, email).Scan(
		&shop.ID, &shop.ShopName, &shop.Email, &shop.PasswordHash, &shop.CreatedAt,
	)
	if err != nil {
		return nil, mapError("get shop", err)
	}
	return &shop, nil
}

// CreateManager inserts a manager into the pool
func (s *CredentialStore) CreateManager(ctx context.Context, manager *domain.Manager) error {
	now := time.Now()
	if manager.CreatedAt.IsZero() {
		manager.CreatedAt = now
	}
	if manager.UpdatedAt.IsZero() {
		manager.UpdatedAt = now
	}
	query := `
		INSERT INTO managers (id, password_hash, lookup_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.q.ExecContext(ctx, query,
		manager.ID, manager.PasswordHash, manager.LookupKey, manager.CreatedAt, manager.UpdatedAt,
	)
	return mapError("create manager", err)
}

// ListManagersByLookupKey returns the managers sharing lookupKey, oldest first
func (s *CredentialStore) ListManagersByLookupKey(ctx context.Context, lookupKey string) ([]*domain.Manager, error) {
	query := `
		SELECT id, password_hash, lookup_key, created_at, updated_at
		FROM managers
		WHERE lookup_key = $1
		ORDER BY created_at, id
	`
	rows, err := s.q.QueryContext(ctx, query, lookupKey)
	if err != nil {
		return nil, mapError("list managers", err)
	}
	defer rows.Close()

	var managers []*domain.Manager
	for rows.Next() {
		var m domain.Manager
		if err := rows.Scan(&m.ID, &m.PasswordHash, &m.LookupKey, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, mapError("scan manager", err)
		}
		managers = append(managers, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list managers", err)
	}
	return managers, nil
}

// UpdateManagerPassword replaces a manager's password hash and lookup key
func (s *CredentialStore) UpdateManagerPassword(ctx context.Context, id, passwordHash, lookupKey string) error {
	query := `
		UPDATE managers
		SET password_hash = $2, lookup_key = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := s.q.ExecContext(ctx, query, id, passwordHash, lookupKey, time.Now())
	if err != nil {
		return mapError("update manager password", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("update manager password", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateAttendant inserts an attendant
func (s *CredentialStore) CreateAttendant(ctx context.Context, attendant *domain.Attendant) error {
	if attendant.CreatedAt.IsZero() {
		attendant.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO attendants (id, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.q.ExecContext(ctx, query,
		attendant.ID, attendant.Name, attendant.PasswordHash, attendant.CreatedAt,
	)
	return mapError("create attendant", err)
}

// GetAttendantByName retrieves an attendant by name
func (s *CredentialStore) GetAttendantByName(ctx context.Context, name string) (*domain.Attendant, error) {
	query := `
		SELECT id, name, password_hash, created_at
		FROM attendants
		WHERE name = $1
	`
	var a domain.Attendant
	err := s.q.QueryRowContext(ctx, query, name).Scan(
		&a.ID, &a.Name, &a.PasswordHash, &a.CreatedAt,
	)
	if err != nil {
		return nil, mapError("get attendant", err)
	}
	return &a, nil
}
