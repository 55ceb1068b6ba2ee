package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
)

// Ensure MockCredentialStore implements CredentialStore and TxManager
var (
	_ driven.CredentialStore = (*MockCredentialStore)(nil)
	_ driven.TxManager       = (*MockCredentialStore)(nil)
)

// MockCredentialStore is an in-memory CredentialStore and TxManager for testing.
// Transactions run one at a time against a copy of the state, which replaces
// the committed state only when the callback succeeds.
type MockCredentialStore struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	state *credentialState
	fail  map[string]error

	commits   int
	rollbacks int
}

// NewMockCredentialStore creates a new MockCredentialStore
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{
		state: newCredentialState(),
		fail:  make(map[string]error),
	}
}

// FailOn makes every call to the named operation return err.
// Pass a nil err to clear it.
func (m *MockCredentialStore) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.fail, op)
		return
	}
	m.fail[op] = err
}

// Commits returns the number of committed transactions
func (m *MockCredentialStore) Commits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commits
}

// Rollbacks returns the number of rolled back transactions
func (m *MockCredentialStore) Rollbacks() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rollbacks
}

// ShopCount returns the number of committed shops
func (m *MockCredentialStore) ShopCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.state.shops)
}

// ManagerCount returns the number of committed managers
func (m *MockCredentialStore) ManagerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.state.managers)
}

// AttendantCount returns the number of committed attendants
func (m *MockCredentialStore) AttendantCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.state.attendants)
}

func (m *MockCredentialStore) WithinTx(ctx context.Context, fn func(store driven.CredentialStore) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.RLock()
	tx := &mockTx{state: m.state.clone(), fail: make(map[string]error, len(m.fail))}
	for op, err := range m.fail {
		tx.fail[op] = err
	}
	m.mu.RUnlock()

	if err := fn(tx); err != nil {
		m.mu.Lock()
		m.rollbacks++
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.state = tx.state
	m.commits++
	m.mu.Unlock()
	return nil
}

func (m *MockCredentialStore) CreateShop(ctx context.Context, shop *domain.Shop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["CreateShop"]; err != nil {
		return err
	}
	return m.state.createShop(shop)
}

func (m *MockCredentialStore) GetShopByEmail(ctx context.Context, email string) (*domain.Shop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail["GetShopByEmail"]; err != nil {
		return nil, err
	}
	return m.state.getShopByEmail(email)
}

func (m *MockCredentialStore) CreateManager(ctx context.Context, manager *domain.Manager) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["CreateManager"]; err != nil {
		return err
	}
	return m.state.createManager(manager)
}

func (m *MockCredentialStore) ListManagersByLookupKey(ctx context.Context, lookupKey string) ([]*domain.Manager, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail["ListManagersByLookupKey"]; err != nil {
		return nil, err
	}
	return m.state.listManagersByLookupKey(lookupKey), nil
}

func (m *MockCredentialStore) UpdateManagerPassword(ctx context.Context, id, passwordHash, lookupKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["UpdateManagerPassword"]; err != nil {
		return err
	}
	return m.state.updateManagerPassword(id, passwordHash, lookupKey)
}

func (m *MockCredentialStore) CreateAttendant(ctx context.Context, attendant *domain.Attendant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["CreateAttendant"]; err != nil {
		return err
	}
	return m.state.createAttendant(attendant)
}

func (m *MockCredentialStore) GetAttendantByName(ctx context.Context, name string) (*domain.Attendant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail["GetAttendantByName"]; err != nil {
		return nil, err
	}
	return m.state.getAttendantByName(name)
}

// mockTx is the transaction-scoped store handed to WithinTx callbacks.
// The owning MockCredentialStore holds txMu for its whole lifetime.
type mockTx struct {
	state *credentialState
	fail  map[string]error
}

func (t *mockTx) CreateShop(ctx context.Context, shop *domain.Shop) error {
	if err := t.fail["CreateShop"]; err != nil {
		return err
	}
	return t.state.createShop(shop)
}

func (t *mockTx) GetShopByEmail(ctx context.Context, email string) (*domain.Shop, error) {
	if err := t.fail["GetShopByEmail"]; err != nil {
		return nil, err
	}
	return t.state.getShopByEmail(email)
}

func (t *mockTx) CreateManager(ctx context.Context, manager *domain.Manager) error {
	if err := t.fail["CreateManager"]; err != nil {
		return err
	}
	return t.state.createManager(manager)
}

func (t *mockTx) ListManagersByLookupKey(ctx context.Context, lookupKey string) ([]*domain.Manager, error) {
	if err := t.fail["ListManagersByLookupKey"]; err != nil {
		return nil, err
	}
	return t.state.listManagersByLookupKey(lookupKey), nil
}

func (t *mockTx) UpdateManagerPassword(ctx context.Context, id, passwordHash, lookupKey string) error {
	if err := t.fail["UpdateManagerPassword"]; err != nil {
		return err
	}
	return t.state.updateManagerPassword(id, passwordHash, lookupKey)
}

func (t *mockTx) CreateAttendant(ctx context.Context, attendant *domain.Attendant) error {
	if err := t.fail["CreateAttendant"]; err != nil {
		return err
	}
	return t.state.createAttendant(attendant)
}

func (t *mockTx) GetAttendantByName(ctx context.Context, name string) (*domain.Attendant, error) {
	if err := t.fail["GetAttendantByName"]; err != nil {
		return nil, err
	}
	return t.state.getAttendantByName(name)
}

type credentialState struct {
	shops      map[string]*domain.Shop // by email
	managers   map[string]*domain.Manager
	attendants map[string]*domain.Attendant // by name
}

func newCredentialState() *credentialState {
	return &credentialState{
		shops:      make(map[string]*domain.Shop),
		managers:   make(map[string]*domain.Manager),
		attendants: make(map[string]*domain.Attendant),
	}
}

func (s *credentialState) clone() *credentialState {
	c := newCredentialState()
	for k, v := range s.shops {
		shop := *v
		c.shops[k] = &shop
	}
	for k, v := range s.managers {
		manager := *v
		c.managers[k] = &manager
	}
	for k, v := range s.attendants {
		attendant := *v
		c.attendants[k] = &attendant
	}
	return c
}

func (s *credentialState) createShop(shop *domain.Shop) error {
	if _, ok := s.shops[shop.Email]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *shop
	s.shops[shop.Email] = &cp
	return nil
}

func (s *credentialState) getShopByEmail(email string) (*domain.Shop, error) {
	shop, ok := s.shops[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *shop
	return &cp, nil
}

func (s *credentialState) createManager(manager *domain.Manager) error {
	if _, ok := s.managers[manager.ID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *manager
	s.managers[manager.ID] = &cp
	return nil
}

func (s *credentialState) listManagersByLookupKey(lookupKey string) []*domain.Manager {
	var result []*domain.Manager
	for _, m := range s.managers {
		if m.LookupKey != lookupKey {
			continue
		}
		cp := *m
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (s *credentialState) updateManagerPassword(id, passwordHash, lookupKey string) error {
	m, ok := s.managers[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.PasswordHash = passwordHash
	m.LookupKey = lookupKey
	return nil
}

func (s *credentialState) createAttendant(attendant *domain.Attendant) error {
	if _, ok := s.attendants[attendant.Name]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *attendant
	s.attendants[attendant.Name] = &cp
	return nil
}

func (s *credentialState) getAttendantByName(name string) (*domain.Attendant, error) {
	a, ok := s.attendants[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}
