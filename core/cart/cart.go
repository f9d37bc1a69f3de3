// Package cart owns the browser's shopping cart: an ordered list of courses
// with quantities, persisted to the browser store after every change.
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/irsalhamdi/learnhub/core/item"
	"github.com/irsalhamdi/learnhub/core/notify"
	"github.com/irsalhamdi/learnhub/storage"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// StorageKey is the store key the cart snapshot lives under.
const StorageKey = "cart"

const (
	msgRemoved = "Item removed from cart"
	msgCleared = "Cart cleared"
	msgNoID    = "This item cannot be added to the cart"
)

type Cart struct {
	mu       sync.Mutex
	items    []item.Item
	store    *storage.Store
	notifier notify.Notifier
	now      func() time.Time
}

// New loads the cart from store. An absent, corrupt or unreachable value
// gives an empty cart. Repeated ids keep their first entry and entries
// without a positive quantity are dropped. Loading never notifies.
func New(ctx context.Context, store *storage.Store, n notify.Notifier, log logrus.FieldLogger) *Cart {
	if n == nil {
		n = notify.Discard
	}
	c := &Cart{
		items:    []item.Item{},
		store:    store,
		notifier: n,
		now:      time.Now,
	}

	res := store.Load(ctx, StorageKey)
	if res.Found() {
		c.items = normalize(item.Decode(res.Raw))
	} else if res.Status != storage.Absent && log != nil {
		log.WithFields(logrus.Fields{
			"key":    StorageKey,
			"status": res.Status,
			"error":  res.Err,
		}).Warn("starting with an empty cart")
	}
	return c
}

// AddItem puts one more unit of p in the cart. A new entry is a copy of p
// with quantity 1 and is announced; an existing entry only has its
// quantity bumped and keeps the fields it was first stored with.
func (c *Cart) AddItem(ctx context.Context, p item.Item) {
	if p.ID.IsZero() {
		c.notifier.Notify(ctx, notify.Error, msgNoID)
		return
	}

	c.mu.Lock()
	next, created := add(c.items, p)
	c.commit(ctx, next)
	c.mu.Unlock()

	if created {
		c.notifier.Notify(ctx, notify.Success, fmt.Sprintf("%s added to cart", title(p)))
	}
}

// RemoveItem deletes the entry with id. The removal is announced even when
// there was nothing to remove.
func (c *Cart) RemoveItem(ctx context.Context, id item.ID) {
	c.mu.Lock()
	next, _ := remove(c.items, id)
	c.commit(ctx, next)
	c.mu.Unlock()

	c.notifier.Notify(ctx, notify.Success, msgRemoved)
}

// SetQuantity sets the quantity of the entry with id. A quantity of zero or
// less removes the entry exactly like RemoveItem.
func (c *Cart) SetQuantity(ctx context.Context, id item.ID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(ctx, id)
		return
	}

	c.mu.Lock()
	next, _ := setQuantity(c.items, id, quantity)
	c.commit(ctx, next)
	c.mu.Unlock()
}

func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	c.commit(ctx, []item.Item{})
	c.mu.Unlock()

	c.notifier.Notify(ctx, notify.Success, msgCleared)
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []item.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return item.Clone(c.items)
}

// Len is the number of distinct entries.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TotalItemCount sums the quantities of all entries.
func (c *Cart) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice sums price times quantity over all entries.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) Contains(id item.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return item.Index(c.items, id) >= 0
}

// commit installs next and writes the full snapshot. Callers hold c.mu.
func (c *Cart) commit(ctx context.Context, next []item.Item) {
	c.items = next
	_ = c.store.Save(ctx, StorageKey, item.NewSnapshot(c.items, c.now()))
}

func title(p item.Item) string {
	if p.Title == "" {
		return "Course"
	}
	return fmt.Sprintf("%q", p.Title)
}
