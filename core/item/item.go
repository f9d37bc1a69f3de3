// Package item holds the entry type shared by the cart and the wishlist and
// the on-disk snapshot format both of them persist.
package item

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// Item is a cart or wishlist entry. Its descriptive fields are copied from
// the catalog when the entry is created and are never refreshed.
type Item struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	Price      Price  `json:"price"`
	Image      string `json:"image,omitempty"`
	Category   string `json:"category,omitempty"`
	Level      string `json:"level,omitempty"`
	Instructor string `json:"instructor,omitempty"`

	// Quantity is only tracked by the cart; wishlist entries leave it zero.
	Quantity int `json:"quantity,omitempty"`
}

func (it *Item) UnmarshalJSON(b []byte) error {
	type plain Item
	aux := struct {
		*plain
		Quantity json.RawMessage `json:"quantity"`
	}{plain: (*plain)(it)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	it.Quantity = coerceCount(aux.Quantity)
	return nil
}

// Subtotal is price times quantity.
func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Decimal.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Index returns the position of the entry with the given id, or -1.
func Index(items []Item, id ID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy the caller may change freely.
func Clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// ErrUnknown is returned by a Finder for ids it does not know.
var ErrUnknown = errors.New("item: unknown id")

// Finder resolves an id into the record that gets copied into a container.
type Finder interface {
	FindItem(ctx context.Context, id ID) (Item, error)
}
