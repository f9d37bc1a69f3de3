package cart

import "github.com/irsalhamdi/learnhub/core/item"

// The transitions below never touch their input; each returns the next
// sequence and whether it differs from the current one.

func add(items []item.Item, p item.Item) ([]item.Item, bool) {
	next := item.Clone(items)
	if i := item.Index(next, p.ID); i >= 0 {
		next[i].Quantity++
		return next, false
	}
	p.Quantity = 1
	return append(next, p), true
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

func setQuantity(items []item.Item, id item.ID, quantity int) ([]item.Item, bool) {
	if quantity <= 0 {
		return remove(items, id)
	}
	i := item.Index(items, id)
	if i < 0 {
		return items, false
	}
	next := item.Clone(items)
	next[i].Quantity = quantity
	return next, true
}

// normalize turns a loaded sequence into a valid cart: one entry per id,
// the first one winning, and no entry without a positive quantity.
func normalize(items []item.Item) []item.Item {
	out := make([]item.Item, 0, len(items))
	for _, it := range item.Dedupe(items) {
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}
