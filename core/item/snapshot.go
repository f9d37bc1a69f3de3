package item

import (
	"bytes"
	"encoding/json"
	"time"
)

// Snapshot is the value persisted under the "cart" and "wishlist" keys.
type Snapshot struct {
	Items     []Item `json:"items"`
	UpdatedAt int64  `json:"updatedAt"`
}

func NewSnapshot(items []Item, at time.Time) Snapshot {
	if items == nil {
		items = []Item{}
	}
	return Snapshot{Items: items, UpdatedAt: at.UnixMilli()}
}

// Decode reads a stored payload written by any schema version. It accepts
// an object with an "items" array and a bare top-level array; anything
// else yields an empty sequence. Entries that cannot be decoded or carry
// no id are skipped.
func Decode(raw []byte) []Item {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []Item{}
	}

	var entries []json.RawMessage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &entries); err != nil {
			return []Item{}
		}
	case '{':
		var obj struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return []Item{}
		}
		if err := json.Unmarshal(obj.Items, &entries); err != nil {
			return []Item{}
		}
	default:
		return []Item{}
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		var it Item
		if err := json.Unmarshal(e, &it); err != nil {
			continue
		}
		if it.ID.IsZero() {
			continue
		}
		items = append(items, it)
	}
	return items
}

// Dedupe keeps the first entry for each id, in order.
func Dedupe(items []Item) []Item {
	seen := make(map[ID]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}
