package middleware

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
	"github.com/sirupsen/logrus"
)

// Errors logs handler errors and turns them into JSON responses. Errors
// without a weberr response become a generic 500.
func Errors(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			fields := map[string]interface{}{
				"req_id":  ContextRequestID(ctx),
				"message": err,
			}
			if f, ok := weberr.Fields(err); ok {
				for k, v := range f {
					fields[k] = v
				}
			}

			body, code, ok := weberr.Response(err)
			if !ok {
				body = weberr.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}
				code = http.StatusInternalServerError
			}

			for k, v := range weberr.Headers(err) {
				w.Header()[k] = v
			}

			entry := log.WithFields(logrus.Fields(fields))
			if code >= http.StatusInternalServerError {
				entry.Error("ERROR")
			} else {
				entry.Warn("request failed")
			}

			return web.Respond(ctx, w, body, code)
		}
		return h
	}
	return m
}
