package test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/learnhub/core/cart"
	"github.com/irsalhamdi/learnhub/core/item"
	"github.com/shopspring/decimal"
)

type cartTest struct {
	*TestEnv
	client *http.Client
}

func TestCart(t *testing.T) {
	env := NewTestEnv(t)
	ct := &cartTest{env, env.Client()}

	ct.showOK(t, 0, "0", 0)

	ct.createItemOK(t, 1)
	ct.createItemOK(t, 1)
	ct.createItemOK(t, 2)
	ct.showOK(t, 3, "88.98", 2)

	if diff := cmp.Diff([]string{
		`success: "Modern React with Hooks" added to cart`,
		`success: "Go for Backend Engineers" added to cart`,
	}, env.Toasts(t, ct.client)); diff != "" {
		t.Fatalf("unexpected toasts (-want +got):\n%s", diff)
	}

	ct.updateItemOK(t, "2", 3)
	ct.showOK(t, 5, "186.98", 2)

	ct.updateItemOK(t, "2", 0)
	ct.showOK(t, 2, "39.98", 1)

	ct.deleteItemOK(t, "404")
	ct.showOK(t, 2, "39.98", 1)

	env.Do(t, ct.client, http.MethodDelete, "/cart", nil, nil, http.StatusNoContent)
	ct.showOK(t, 0, "0", 0)

	if diff := cmp.Diff([]string{
		"success: Item removed from cart",
		"success: Item removed from cart",
		"success: Cart cleared",
	}, env.Toasts(t, ct.client)); diff != "" {
		t.Fatalf("unexpected toasts (-want +got):\n%s", diff)
	}
}

func TestCartValidation(t *testing.T) {
	env := NewTestEnv(t)
	c := env.Client()

	env.Do(t, c, http.MethodPut, "/cart/items", map[string]any{"courseId": 999}, nil, http.StatusNotFound)
	env.Do(t, c, http.MethodPut, "/cart/items", map[string]any{}, nil, http.StatusBadRequest)
	env.Do(t, c, http.MethodPut, "/cart/items", map[string]any{"courseId": 1, "extra": true}, nil, http.StatusBadRequest)
	env.Do(t, c, http.MethodPatch, "/cart/items/1", map[string]any{}, nil, http.StatusBadRequest)

	var view cart.View
	env.Do(t, c, http.MethodGet, "/cart", nil, &view, http.StatusOK)
	if len(view.Items) != 0 {
		t.Fatalf("refused requests must not change the cart, got %+v", view.Items)
	}
}

func TestCartIsolatedPerBrowser(t *testing.T) {
	env := NewTestEnv(t)
	alice := &cartTest{env, env.NewBrowser(t)}
	bob := &cartTest{env, env.NewBrowser(t)}

	alice.createItemOK(t, 4)
	alice.showOK(t, 1, "29.99", 1)
	bob.showOK(t, 0, "0", 0)
}

func TestCartWithRedis(t *testing.T) {
	env := NewTestEnv(t, withRedis)
	ct := &cartTest{env, env.Client()}

	ct.createItemOK(t, 2)
	ct.createItemOK(t, 2)
	ct.showOK(t, 2, "98", 1)
}

func TestCartSurvivesLogin(t *testing.T) {
	env := NewTestEnv(t)
	ct := &cartTest{env, env.Client()}

	ct.createItemOK(t, 6)
	env.Login(t, ct.client, demoEmail, demoPass)
	ct.showOK(t, 1, "24.5", 1)

	env.Do(t, ct.client, http.MethodPost, "/auth/logout", nil, nil, http.StatusNoContent)
	ct.showOK(t, 1, "24.5", 1)
}

func (ct *cartTest) createItemOK(t *testing.T, courseID int64) cart.View {
	t.Helper()
	var view cart.View
	body := map[string]any{"courseId": courseID}
	ct.Do(t, ct.client, http.MethodPut, "/cart/items", body, &view, http.StatusOK)

	if !contains(view.Items, item.IntID(courseID)) {
		t.Fatalf("course %d missing from cart after add", courseID)
	}
	return view
}

func (ct *cartTest) updateItemOK(t *testing.T, id string, quantity int) {
	t.Helper()
	body := map[string]any{"quantity": quantity}
	ct.Do(t, ct.client, http.MethodPatch, "/cart/items/"+id, body, nil, http.StatusOK)
}

func (ct *cartTest) deleteItemOK(t *testing.T, id string) {
	t.Helper()
	ct.Do(t, ct.client, http.MethodDelete, "/cart/items/"+id, nil, nil, http.StatusOK)
}

func (ct *cartTest) showOK(t *testing.T, units int, total string, distinct int) {
	t.Helper()
	var view cart.View
	ct.Do(t, ct.client, http.MethodGet, "/cart", nil, &view, http.StatusOK)

	want := decimal.RequireFromString(total)
	if view.TotalItems != units || !view.TotalPrice.Decimal.Equal(want) || view.Distinct != distinct {
		t.Fatalf("expected %d units, total %s, %d entries; got %d, %s, %d",
			units, want, distinct, view.TotalItems, view.TotalPrice, view.Distinct)
	}
}

func contains(items []item.Item, id item.ID) bool {
	return item.Index(items, id) >= 0
}
