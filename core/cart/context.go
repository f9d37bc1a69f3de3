package cart

import (
	"context"
	"errors"
)

type ctxKey int

const cartKey ctxKey = 1

// ErrNoProvider is returned when the cart is requested from a context that
// was never given one.
var ErrNoProvider = errors.New("cart: no cart in context, wrap the handler with the shop provider")

func NewContext(ctx context.Context, c *Cart) context.Context {
	return context.WithValue(ctx, cartKey, c)
}

func FromContext(ctx context.Context) (*Cart, error) {
	c, ok := ctx.Value(cartKey).(*Cart)
	if !ok || c == nil {
		return nil, ErrNoProvider
	}
	return c, nil
}
