package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/irsalhamdi/learnhub/api/web"
)

const (
	RequestIDHeader = "X-Request-Id"

	requestIDMaxLen = 128
)

type reqIDKey struct{}

// RequestID tags the request with the id the client sent, or a fresh uuid
// when the header is missing or unusable, and echoes it back.
func RequestID() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			id := r.Header.Get(RequestIDHeader)
			if !usableRequestID(id) {
				id = uuid.NewString()
			}
			ctx = context.WithValue(ctx, reqIDKey{}, id)
			w.Header().Set(RequestIDHeader, id)

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func usableRequestID(id string) bool {
	if id == "" || len(id) > requestIDMaxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

func ContextRequestID(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey{}).(string)
	return id
}
