package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
)

func HandleDrain() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		inbox, err := InboxFromContext(ctx)
		if err != nil {
			return weberr.InternalError(fmt.Errorf("draining notifications: %w", err))
		}

		return web.Respond(ctx, w, inbox.Drain(ctx), http.StatusOK)
	}
}
