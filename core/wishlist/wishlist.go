// Package wishlist keeps the courses a browser has saved for later. Entries
// are unique by id and carry no quantity.
package wishlist

import (
	"context"
	"sync"
	"time"

	"github.com/irsalhamdi/learnhub/core/item"
	"github.com/irsalhamdi/learnhub/core/notify"
	"github.com/irsalhamdi/learnhub/storage"
	"github.com/sirupsen/logrus"
)

const StorageKey = "wishlist"

const (
	msgAdded   = "Added to wishlist"
	msgRemoved = "Removed from wishlist"
	msgNoID    = "This item cannot be added to the wishlist"
)

type Wishlist struct {
	mu       sync.Mutex
	items    []item.Item
	store    *storage.Store
	notifier notify.Notifier
	now      func() time.Time
}

// New loads the wishlist from store, falling back to an empty one.
// Repeated ids keep their first entry.
func New(ctx context.Context, store *storage.Store, n notify.Notifier, log logrus.FieldLogger) *Wishlist {
	if n == nil {
		n = notify.Discard
	}
	w := &Wishlist{
		items:    []item.Item{},
		store:    store,
		notifier: n,
		now:      time.Now,
	}

	switch res := store.Load(ctx, StorageKey); {
	case res.Found():
		w.items = strip(item.Dedupe(item.Decode(res.Raw)))
	case res.Status != storage.Absent && log != nil:
		log.WithFields(logrus.Fields{
			"key":    StorageKey,
			"status": res.Status,
			"error":  res.Err,
		}).Warn("starting with an empty wishlist")
	}
	return w
}

// AddItem appends p unless its id is already saved. Only an actual
// insertion is announced.
func (w *Wishlist) AddItem(ctx context.Context, p item.Item) {
	if p.ID.IsZero() {
		w.notifier.Notify(ctx, notify.Error, msgNoID)
		return
	}

	w.mu.Lock()
	next, inserted := add(w.items, p)
	w.commit(ctx, next)
	w.mu.Unlock()

	if inserted {
		w.notifier.Notify(ctx, notify.Success, msgAdded)
	}
}

// RemoveItem deletes the entry with id and always announces it.
func (w *Wishlist) RemoveItem(ctx context.Context, id item.ID) {
	w.mu.Lock()
	next, _ := remove(w.items, id)
	w.commit(ctx, next)
	w.mu.Unlock()

	w.notifier.Notify(ctx, notify.Success, msgRemoved)
}

func (w *Wishlist) Items() []item.Item {
	w.mu.Lock()
	defer w.mu.Unlock()
	return item.Clone(w.items)
}

// TotalItemCount is the number of saved entries.
func (w *Wishlist) TotalItemCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

func (w *Wishlist) Contains(id item.ID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return item.Index(w.items, id) >= 0
}

func (w *Wishlist) commit(ctx context.Context, next []item.Item) {
	w.items = next
	_ = w.store.Save(ctx, StorageKey, item.NewSnapshot(w.items, w.now()))
}

func add(items []item.Item, p item.Item) ([]item.Item, bool) {
	if item.Index(items, p.ID) >= 0 {
		return items, false
	}
	p.Quantity = 0
	return append(item.Clone(items), p), true
}

func remove(items []item.Item, id item.ID) ([]item.Item, bool) {
	i := item.Index(items, id)
	if i < 0 {
		return items, false
	}
	next := make([]item.Item, 0, len(items)-1)
	next = append(next, items[:i]...)
	return append(next, items[i+1:]...), true
}

// strip drops quantities a cart-shaped payload may have left behind.
func strip(items []item.Item) []item.Item {
	for i := range items {
		items[i].Quantity = 0
	}
	return items
}
