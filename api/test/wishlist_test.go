package test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/learnhub/core/item"
	"github.com/irsalhamdi/learnhub/core/shop"
	"github.com/irsalhamdi/learnhub/core/wishlist"
)

func TestWishlist(t *testing.T) {
	env := NewTestEnv(t)
	c := env.Client()

	var view wishlist.View
	for i := 0; i < 2; i++ {
		env.Do(t, c, http.MethodPut, "/wishlist/items", map[string]any{"courseId": 9}, &view, http.StatusOK)
	}
	if view.TotalItems != 1 {
		t.Fatalf("expected one saved course, got %d", view.TotalItems)
	}
	env.Do(t, c, http.MethodPut, "/wishlist/items", map[string]any{"courseId": 3}, &view, http.StatusOK)

	env.Do(t, c, http.MethodDelete, "/wishlist/items/9", nil, &view, http.StatusOK)
	env.Do(t, c, http.MethodDelete, "/wishlist/items/9", nil, &view, http.StatusOK)

	env.Do(t, c, http.MethodGet, "/wishlist", nil, &view, http.StatusOK)
	if len(view.Items) != 1 || !view.Items[0].ID.Equal(item.IntID(3)) {
		t.Fatalf("unexpected wishlist %+v", view.Items)
	}

	want := []string{
		"success: Added to wishlist",
		"success: Added to wishlist",
		"success: Removed from wishlist",
		"success: Removed from wishlist",
	}
	if diff := cmp.Diff(want, env.Toasts(t, c)); diff != "" {
		t.Fatalf("unexpected toasts (-want +got):\n%s", diff)
	}
}

func TestWishlistMoveToCart(t *testing.T) {
	env := NewTestEnv(t)
	c := env.Client()

	env.Do(t, c, http.MethodPut, "/wishlist/items", map[string]any{"courseId": 5}, nil, http.StatusOK)

	var res shop.MoveResult
	env.Do(t, c, http.MethodPost, "/wishlist/items/5/move", nil, &res, http.StatusOK)
	if res.Cart.TotalItems != 1 || res.Wishlist.TotalItems != 0 {
		t.Fatalf("unexpected move result %+v", res)
	}

	env.Do(t, c, http.MethodPost, "/wishlist/items/5/move", nil, nil, http.StatusNotFound)
}
