package wishlist

import (
	"context"
	"errors"
)

type ctxKey int

const wishlistKey ctxKey = 1

var ErrNoProvider = errors.New("wishlist: no wishlist in context, wrap the handler with the shop provider")

func NewContext(ctx context.Context, w *Wishlist) context.Context {
	return context.WithValue(ctx, wishlistKey, w)
}

func FromContext(ctx context.Context) (*Wishlist, error) {
	w, ok := ctx.Value(wishlistKey).(*Wishlist)
	if !ok || w == nil {
		return nil, ErrNoProvider
	}
	return w, nil
}
