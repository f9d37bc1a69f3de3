package shop

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
	"github.com/irsalhamdi/learnhub/core/cart"
	"github.com/irsalhamdi/learnhub/core/item"
	"github.com/irsalhamdi/learnhub/core/wishlist"
)

type MoveResult struct {
	Cart     cart.View     `json:"cart"`
	Wishlist wishlist.View `json:"wishlist"`
}

// HandleMoveToCart moves a saved course from the wishlist into the cart.
func HandleMoveToCart() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := item.ParseID(web.Param(r, "id"))

		c, err := cart.FromContext(ctx)
		if err != nil {
			return weberr.InternalError(err)
		}
		wl, err := wishlist.FromContext(ctx)
		if err != nil {
			return weberr.InternalError(err)
		}

		items := wl.Items()
		i := item.Index(items, id)
		if i < 0 {
			return weberr.NotFound(fmt.Errorf("course[%s] is not in the wishlist", id))
		}

		c.AddItem(ctx, items[i])
		wl.RemoveItem(ctx, id)

		res := MoveResult{Cart: cart.NewView(c), Wishlist: wishlist.NewView(wl)}
		return web.Respond(ctx, w, res, http.StatusOK)
	}
}
