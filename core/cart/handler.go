package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
	"github.com/irsalhamdi/learnhub/core/item"
	"github.com/irsalhamdi/learnhub/validate"
)

type View struct {
	Items      []item.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice item.Price  `json:"totalPrice"`
	Distinct   int         `json:"distinct"`
}

func NewView(c *Cart) View {
	return View{
		Items:      c.Items(),
		TotalItems: c.TotalItemCount(),
		TotalPrice: item.PriceFromDecimal(c.TotalPrice()),
		Distinct:   c.Len(),
	}
}

type ItemNew struct {
	CourseID item.ID `json:"courseId"`
}

type QuantityUp struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func current(ctx context.Context) (*Cart, error) {
	c, err := FromContext(ctx)
	if err != nil {
		return nil, weberr.InternalError(err)
	}
	return c, nil
}

func HandleShow() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c, err := current(ctx)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, NewView(c), http.StatusOK)
	}
}

func HandleCreateItem(catalog item.Finder) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if in.CourseID.IsZero() {
			err := errors.New("courseId is a required field")
			return weberr.Invalid(err)
		}

		p, err := catalog.FindItem(ctx, in.CourseID)
		switch {
		case errors.Is(err, item.ErrUnknown):
			return weberr.NotFound(fmt.Errorf("course[%s] not found", in.CourseID))
		case err != nil:
			return fmt.Errorf("looking up course[%s]: %w", in.CourseID, err)
		}

		c, err := current(ctx)
		if err != nil {
			return err
		}
		c.AddItem(ctx, p)

		return web.Respond(ctx, w, NewView(c), http.StatusOK)
	}
}

func HandleUpdateItem() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := item.ParseID(web.Param(r, "id"))

		var up QuantityUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.Invalid(err)
		}

		c, err := current(ctx)
		if err != nil {
			return err
		}
		c.SetQuantity(ctx, id, *up.Quantity)

		return web.Respond(ctx, w, NewView(c), http.StatusOK)
	}
}

func HandleDeleteItem() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := item.ParseID(web.Param(r, "id"))

		c, err := current(ctx)
		if err != nil {
			return err
		}
		c.RemoveItem(ctx, id)

		return web.Respond(ctx, w, NewView(c), http.StatusOK)
	}
}

func HandleDelete() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c, err := current(ctx)
		if err != nil {
			return err
		}
		c.Clear(ctx)

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
