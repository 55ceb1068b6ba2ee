package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/shop-auth/internal/core/ports/driven"
)

// LedgerPruner periodically drops revocation entries for tokens that expired
// more than Grace ago. It only runs when ledger expiry is enabled; by default
// the ledger keeps every entry.
type LedgerPruner struct {
	pruner driven.ExpiredRevocationPruner
	logger *slog.Logger
	grace  time.Duration
	now    func() time.Time

	// Internal state
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	interval time.Duration
}

// LedgerPrunerConfig holds configuration for the pruner.
type LedgerPrunerConfig struct {
	Pruner   driven.ExpiredRevocationPruner
	Logger   *slog.Logger
	Interval time.Duration // How often to prune (default: 1h)
	Grace    time.Duration // How long past expiry an entry is kept (negative means 0)
}

// NewLedgerPruner creates a new pruner.
func NewLedgerPruner(cfg LedgerPrunerConfig) *LedgerPruner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	grace := cfg.Grace
	if grace < 0 {
		grace = 0
	}

	return &LedgerPruner{
		pruner:   cfg.Pruner,
		logger:   logger.With("component", "ledger_pruner"),
		grace:    grace,
		now:      time.Now,
		interval: interval,
	}
}

// Start begins the prune loop.
// It runs until Stop is called or context is cancelled.
func (p *LedgerPruner) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	p.logger.Info("ledger pruner starting", "interval", p.interval, "grace", p.grace)

	go p.run(ctx)
}

// Stop stops the loop and waits for it to exit.
func (p *LedgerPruner) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	close(p.stopCh)
	p.mu.Unlock()

	<-p.doneCh

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	p.logger.Info("ledger pruner stopped")
}

func (p *LedgerPruner) run(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Run immediately on start
	p.PruneOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.PruneOnce(ctx)
		}
	}
}

// PruneOnce runs a single prune pass. Failures are logged and retried on
// the next tick.
func (p *LedgerPruner) PruneOnce(ctx context.Context) int64 {
	n, err := p.pruner.PruneExpired(ctx, p.now().Add(-p.grace))
	if err != nil {
		p.logger.Error("prune revoked tokens failed", "error", err)
		return 0
	}
	if n > 0 {
		p.logger.Info("pruned revoked tokens", "count", n)
	}
	return n
}
