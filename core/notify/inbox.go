package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/irsalhamdi/learnhub/storage"
)

// InboxKey is where pending toasts are kept for the browser.
const InboxKey = "notifications"

// Inbox queues toasts in the browser's store until the client drains them.
// Entries older than ttl are dropped; at most limit entries are kept,
// newest last.
type Inbox struct {
	mu    sync.Mutex
	store *storage.Store
	ttl   time.Duration
	limit int
	now   func() time.Time
}

func NewInbox(store *storage.Store, ttl time.Duration, limit int) *Inbox {
	return &Inbox{store: store, ttl: ttl, limit: limit, now: time.Now}
}

// Deliver is the Inbox as a Subscriber.
func (i *Inbox) Deliver(ctx context.Context, n Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	pending := append(i.load(ctx), n)
	if i.limit > 0 && len(pending) > i.limit {
		pending = pending[len(pending)-i.limit:]
	}
	return i.store.Save(ctx, InboxKey, pending)
}

// Drain returns the live toasts and empties the inbox.
func (i *Inbox) Drain(ctx context.Context) []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()

	pending := i.load(ctx)
	if len(pending) > 0 {
		_ = i.store.Save(ctx, InboxKey, []Notification{})
	}
	return pending
}

func (i *Inbox) load(ctx context.Context) []Notification {
	res := i.store.Load(ctx, InboxKey)
	if !res.Found() {
		return []Notification{}
	}

	var all []Notification
	if err := json.Unmarshal(res.Raw, &all); err != nil {
		return []Notification{}
	}

	live := make([]Notification, 0, len(all))
	cutoff := i.now().Add(-i.ttl)
	for _, n := range all {
		if i.ttl > 0 && n.CreatedAt.Before(cutoff) {
			continue
		}
		live = append(live, n)
	}
	return live
}

type ctxKey int

const inboxKey ctxKey = 1

var ErrNoInbox = errors.New("notify: no notification inbox in context, the request did not pass through the shop provider")

func NewInboxContext(ctx context.Context, i *Inbox) context.Context {
	return context.WithValue(ctx, inboxKey, i)
}

func InboxFromContext(ctx context.Context) (*Inbox, error) {
	i, ok := ctx.Value(inboxKey).(*Inbox)
	if !ok || i == nil {
		return nil, ErrNoInbox
	}
	return i, nil
}
