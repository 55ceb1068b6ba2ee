package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type mockPruner struct {
	calls  atomic.Int32
	before atomic.Int64 // unix nanos of the last cutoff
	n      int64
	err    error
}

func (m *mockPruner) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	m.calls.Add(1)
	m.before.Store(before.UnixNano())
	return m.n, m.err
}

func TestNewLedgerPruner_Defaults(t *testing.T) {
	p := NewLedgerPruner(LedgerPrunerConfig{Pruner: &mockPruner{}})

	assert.Equal(t, time.Hour, p.interval)
	assert.Zero(t, p.grace)
	assert.NotNil(t, p.logger)

	p = NewLedgerPruner(LedgerPrunerConfig{Pruner: &mockPruner{}, Grace: -time.Minute})
	assert.Zero(t, p.grace, "negative grace is clamped")
}

func TestLedgerPruner_CutoffHonorsGrace(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := &mockPruner{}
	p := NewLedgerPruner(LedgerPrunerConfig{Pruner: m, Grace: 5 * time.Minute})
	p.now = func() time.Time { return now }

	p.PruneOnce(context.Background())

	assert.Equal(t, now.Add(-5*time.Minute).UnixNano(), m.before.Load())
}

func TestLedgerPruner_PruneOnce(t *testing.T) {
	m := &mockPruner{n: 3}
	p := NewLedgerPruner(LedgerPrunerConfig{Pruner: m})

	assert.Equal(t, int64(3), p.PruneOnce(context.Background()))
	assert.Equal(t, int32(1), m.calls.Load())
}

func TestLedgerPruner_PruneOnceError(t *testing.T) {
	m := &mockPruner{err: errors.New("db down")}
	p := NewLedgerPruner(LedgerPrunerConfig{Pruner: m})

	assert.Equal(t, int64(0), p.PruneOnce(context.Background()))
}

func TestLedgerPruner_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := &mockPruner{}
	p := NewLedgerPruner(LedgerPrunerConfig{Pruner: m, Interval: 10 * time.Millisecond})

	p.Start(context.Background())
	p.Start(context.Background()) // second start is a no-op

	assert.Eventually(t, func() bool { return m.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	p.Stop()
	calls := m.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, m.calls.Load(), "no prunes after stop")

	p.Stop() // stopping twice is safe
}

func TestLedgerPruner_ContextCancel(t *testing.T) {
	m := &mockPruner{}
	p := NewLedgerPruner(LedgerPrunerConfig{Pruner: m, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	select {
	case <-p.doneCh:
	case <-time.After(time.Second):
		t.Fatal("pruner did not exit on context cancel")
	}
	assert.Equal(t, int32(1), m.calls.Load(), "runs once on start")
}
