// Package shop provides the per-request shop state: the browser's store,
// its toast inbox, the notifier and both containers.
package shop

import (
	"context"
	"net/http"
	"time"

	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/core/cart"
	"github.com/irsalhamdi/learnhub/core/notify"
	"github.com/irsalhamdi/learnhub/core/wishlist"
	"github.com/irsalhamdi/learnhub/storage"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Source      storage.Source
	Log         logrus.FieldLogger
	NotifyTTL   time.Duration
	NotifyLimit int
}

// Provide builds the shop state for the request and puts it in the
// context. A request that already carries a cart passes through unchanged,
// so nesting the middleware neither rebuilds nor re-announces anything.
func Provide(cfg Config) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if _, err := cart.FromContext(ctx); err == nil {
				return handler(ctx, w, r)
			}

			ctx = Attach(ctx, cfg)
			return handler(ctx, w, r.WithContext(ctx))
		}
	}
}

// Attach is Provide for code that is not behind a web.Handler.
func Attach(ctx context.Context, cfg Config) context.Context {
	store := storage.New(nil, cfg.Log)
	if cfg.Source != nil {
		m, err := cfg.Source.Medium(ctx)
		if err != nil {
			cfg.Log.WithError(err).Warn("browser store unavailable, state will not persist")
		} else {
			store = storage.New(m, cfg.Log)
		}
	}

	inbox := notify.NewInbox(store, cfg.NotifyTTL, cfg.NotifyLimit)
	em := notify.NewEmitter(cfg.Log, inbox.Deliver, notify.LogSubscriber(cfg.Log))

	ctx = notify.NewContext(ctx, em)
	ctx = notify.NewInboxContext(ctx, inbox)
	ctx = cart.NewContext(ctx, cart.New(ctx, store, em, cfg.Log))
	ctx = wishlist.NewContext(ctx, wishlist.New(ctx, store, em, cfg.Log))
	return ctx
}
