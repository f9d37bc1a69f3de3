package wishlist

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
	"github.com/irsalhamdi/learnhub/core/item"
)

type View struct {
	Items      []item.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
}

func NewView(wl *Wishlist) View {
	return View{Items: wl.Items(), TotalItems: wl.TotalItemCount()}
}

type ItemNew struct {
	CourseID item.ID `json:"courseId"`
}

func HandleShow() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		wl, err := FromContext(ctx)
		if err != nil {
			return weberr.InternalError(err)
		}

		return web.Respond(ctx, w, NewView(wl), http.StatusOK)
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

		wl, err := FromContext(ctx)
		if err != nil {
			return weberr.InternalError(err)
		}
		wl.AddItem(ctx, p)

		return web.Respond(ctx, w, NewView(wl), http.StatusOK)
	}
}

func HandleDeleteItem() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		wl, err := FromContext(ctx)
		if err != nil {
			return weberr.InternalError(err)
		}
		wl.RemoveItem(ctx, item.ParseID(web.Param(r, "id")))

		return web.Respond(ctx, w, NewView(wl), http.StatusOK)
	}
}
