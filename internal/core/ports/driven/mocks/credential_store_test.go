package mocks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
)

func TestMockCredentialStore_WithinTxSnapshotsFailures(t *testing.T) {
	m := NewMockCredentialStore()
	ctx := context.Background()
	injected := errors.New("injected")

	err := m.WithinTx(ctx, func(store driven.CredentialStore) error {
		// Injected after the transaction began, so only later transactions see it
		m.FailOn("CreateShop", injected)
		return store.CreateShop(ctx, &domain.Shop{ID: "s1", Email: "a@x.com"})
	})
	if err != nil {
		t.Fatalf("expected running transaction to keep its failure set, got %v", err)
	}

	err = m.WithinTx(ctx, func(store driven.CredentialStore) error {
		return store.CreateShop(ctx, &domain.Shop{ID: "s2", Email: "b@x.com"})
	})
	if !errors.Is(err, injected) {
		t.Errorf("expected injected failure in next transaction, got %v", err)
	}
	if m.ShopCount() != 1 || m.Commits() != 1 || m.Rollbacks() != 1 {
		t.Errorf("unexpected state: shops=%d commits=%d rollbacks=%d", m.ShopCount(), m.Commits(), m.Rollbacks())
	}
}

// Run with -race: FailOn and WithinTx touch the failure set from different goroutines
func TestMockCredentialStore_ConcurrentFailOn(t *testing.T) {
	m := NewMockCredentialStore()
	ctx := context.Background()
	injected := errors.New("injected")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				m.FailOn("GetAttendantByName", injected)
			} else {
				m.FailOn("GetAttendantByName", nil)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			err := m.WithinTx(ctx, func(store driven.CredentialStore) error {
				_, err := store.GetAttendantByName(ctx, "ann")
				return err
			})
			if !errors.Is(err, injected) && !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("unexpected error %v", err)
				return
			}
		}
	}()
	wg.Wait()
}

func TestMockCredentialStore_ListManagersByLookupKey(t *testing.T) {
	m := NewMockCredentialStore()
	ctx := context.Background()

	for _, mgr := range []*domain.Manager{
		{ID: "m2", LookupKey: "k1"},
		{ID: "m1", LookupKey: "k1"},
		{ID: "m3", LookupKey: "k2"},
	} {
		if err := m.CreateManager(ctx, mgr); err != nil {
			t.Fatalf("create manager: %v", err)
		}
	}

	got, err := m.ListManagersByLookupKey(ctx, "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m2" {
		t.Errorf("expected m1, m2 in id order, got %v", got)
	}

	if err := m.UpdateManagerPassword(ctx, "m1", "hashed:new", "k2"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, _ := m.ListManagersByLookupKey(ctx, "k2"); len(got) != 2 {
		t.Errorf("expected rekeyed manager under k2, got %d", len(got))
	}
	if err := m.UpdateManagerPassword(ctx, "missing", "h", "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
