// Package state keeps locally mutated collections (posts, users, reports,
// comments) consistent with eventually-confirmed server state: optimistic
// changes are applied immediately and rolled back exactly when the confirming
// request fails.
package state

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/x3alone/01blog/internal/client/notify"
)

// Key identifies an in-flight mutation by item and action kind. At most one
// confirmation per key may be outstanding, which also gives per-item ordering.
type Key struct {
	ItemID int64
	Action string
}

// Mutation describes one reconciled state change.
type Mutation struct {
	// Apply performs the optimistic local change. Nil for mutations that must
	// only take effect after confirmation (removals are not cheaply
	// reversible, so they are never applied optimistically).
	Apply func()
	// Revert restores the exact pre-mutation value when Confirm fails.
	Revert func()
	// Confirm issues the request that makes the change authoritative.
	Confirm func(ctx context.Context) error
	// OnSuccess runs after a confirmed 2xx, e.g. filtering a deleted item out.
	OnSuccess func()
}

// Coordinator runs mutations with a duplicate-submission guard and guarantees
// locally visible state converges to server truth.
type Coordinator struct {
	mu       sync.Mutex
	inflight map[Key]struct{}
	wg       sync.WaitGroup

	notifier *notify.Notifier
	log      *zap.Logger
}

// NewCoordinator builds a coordinator reporting failures through n.
func NewCoordinator(n *notify.Notifier, log *zap.Logger) *Coordinator {
	return &Coordinator{
		inflight: make(map[Key]struct{}),
		notifier: n,
		log:      log,
	}
}

// Do applies m optimistically and confirms it in the background. A second
// invocation for the same key while one is outstanding is ignored and returns
// false — duplicates are dropped, never queued or parallelized.
func (c *Coordinator) Do(ctx context.Context, key Key, m Mutation) bool {
	c.mu.Lock()
	if _, busy := c.inflight[key]; busy {
		c.mu.Unlock()
		c.log.Debug("mutation already in flight, ignoring",
			zap.Int64("item", key.ItemID), zap.String("action", key.Action))
		return false
	}
	c.inflight[key] = struct{}{}
	c.mu.Unlock()

	if m.Apply != nil {
		m.Apply()
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			delete(c.inflight, key)
			c.mu.Unlock()
		}()

		if err := m.Confirm(ctx); err != nil {
			if m.Revert != nil {
				m.Revert()
			}
			c.log.Warn("mutation rejected, rolled back",
				zap.Int64("item", key.ItemID), zap.String("action", key.Action), zap.Error(err))
			c.notifier.Error(fmt.Sprintf("%s failed: %v", key.Action, err))
			return
		}
		if m.OnSuccess != nil {
			m.OnSuccess()
		}
	}()
	return true
}

// Wait blocks until every in-flight confirmation has settled. The shell calls
// it on exit so no rollback is lost.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}
