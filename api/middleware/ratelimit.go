package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
	"github.com/irsalhamdi/learnhub/rate"
)

// RateLimit refuses requests from clients that went over their budget.
// Clients are told apart by remote IP.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !lim.Check(ip) {
				return weberr.TooManyRequests(
					fmt.Errorf("client[%s] over rate limit", ip),
					weberr.WithHeader("Retry-After", "1"),
					weberr.WithFields(map[string]interface{}{"client": ip}),
				)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
