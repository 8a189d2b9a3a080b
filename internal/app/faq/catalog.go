package faq

import (
	"context"
	"sync"

	"supportchat/internal/pkg/logx"
)

// Catalog holds the in-memory snapshot of active FAQ entries served to the matcher.
// It is loaded once at startup and can be reloaded on demand when the content
// dashboard publishes changes; widget sessions always match against whatever
// snapshot is current when they start.
type Catalog struct {
	store Store

	mu      sync.RWMutex
	entries []Entry
}

// NewCatalog constructs an empty Catalog on top of the given store.
func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// Load replaces the snapshot with the store's current active entries.
func (c *Catalog) Load(ctx context.Context) error {
	entries, err := c.store.ListActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()

	logx.Info("FAQ catalog snapshot loaded.", "entry_count", len(entries))
	return nil
}

// Entries returns the current snapshot. The slice is shared and must be
// treated as read-only by callers; the matcher never mutates it.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.entries
}
