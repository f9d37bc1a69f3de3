// Package dashboard serves the summaries shown around the shop: the header
// badges and the logged in user's dashboard.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
	"github.com/irsalhamdi/learnhub/core/auth"
	"github.com/irsalhamdi/learnhub/core/cart"
	"github.com/irsalhamdi/learnhub/core/course"
	"github.com/irsalhamdi/learnhub/core/item"
	"github.com/irsalhamdi/learnhub/core/wishlist"
	"github.com/sirupsen/logrus"
)

const recommendations = 4

type Badges struct {
	Cart     int `json:"cart"`
	Wishlist int `json:"wishlist"`
}

type Dashboard struct {
	User            auth.User       `json:"user"`
	Cart            cart.View       `json:"cart"`
	Wishlist        wishlist.View   `json:"wishlist"`
	Recommendations []course.Course `json:"recommendations"`
}

// HandleBadges reports the header counters. It degrades to zero for a
// container that is not available instead of failing the page.
func HandleBadges(log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var b Badges

		if c, err := cart.FromContext(ctx); err == nil {
			b.Cart = c.TotalItemCount()
		} else {
			log.WithError(err).Debug("cart badge unavailable")
		}

		if wl, err := wishlist.FromContext(ctx); err == nil {
			b.Wishlist = wl.TotalItemCount()
		} else {
			log.WithError(err).Debug("wishlist badge unavailable")
		}

		return web.Respond(ctx, w, b, http.StatusOK)
	}
}

func HandleDashboard(cat *course.Catalog, dir *auth.Directory) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := auth.GetClaims(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		u, err := dir.Fetch(ctx, clm.UserID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				return weberr.NotAuthorized(fmt.Errorf("user[%s] no longer exists", clm.UserID))
			}
			return fmt.Errorf("fetching user[%s]: %w", clm.UserID, err)
		}

		c, err := cart.FromContext(ctx)
		if err != nil {
			return weberr.InternalError(err)
		}
		wl, err := wishlist.FromContext(ctx)
		if err != nil {
			return weberr.InternalError(err)
		}

		d := Dashboard{
			User:     u,
			Cart:     cart.NewView(c),
			Wishlist: wishlist.NewView(wl),
		}
		d.Recommendations = cat.Related(owned(d.Cart.Items, d.Wishlist.Items), recommendations)

		return web.Respond(ctx, w, d, http.StatusOK)
	}
}

func owned(lists ...[]item.Item) []item.ID {
	var ids []item.ID
	for _, l := range lists {
		for _, it := range l {
			ids = append(ids, it.ID)
		}
	}
	return ids
}
