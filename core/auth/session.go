package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// LoadAndSave loads the browser session before the handler runs and
// commits it afterwards. The response is held back until the session
// cookie has been written.
func LoadAndSave(sm *scs.SessionManager) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var token string
			if c, err := r.Cookie(sm.Cookie.Name); err == nil {
				token = c.Value
			}

			ctx, err := sm.Load(ctx, token)
			if err != nil {
				return fmt.Errorf("loading session: %w", err)
			}
			r = r.WithContext(ctx)

			bw := &bufferedWriter{ResponseWriter: w}
			herr := handler(ctx, bw, r)

			switch sm.Status(ctx) {
			case scs.Modified:
				token, expiry, err := sm.Commit(ctx)
				if err != nil {
					return fmt.Errorf("committing session: %w", err)
				}
				writeCookie(w, sm, token, expiry)
			case scs.Destroyed:
				writeCookie(w, sm, "", time.Time{})
			}

			if err := bw.flush(); err != nil {
				return err
			}
			return herr
		}
	}
}

func writeCookie(w http.ResponseWriter, sm *scs.SessionManager, token string, expiry time.Time) {
	c := &http.Cookie{
		Name:     sm.Cookie.Name,
		Value:    token,
		Path:     sm.Cookie.Path,
		Domain:   sm.Cookie.Domain,
		Secure:   sm.Cookie.Secure,
		HttpOnly: sm.Cookie.HttpOnly,
		SameSite: sm.Cookie.SameSite,
	}

	if token == "" {
		c.Expires = time.Unix(1, 0)
		c.MaxAge = -1
	} else if sm.Cookie.Persist {
		c.Expires = time.Unix(expiry.Unix()+1, 0)
		c.MaxAge = int(time.Until(expiry).Seconds() + 1)
	}

	w.Header().Add("Set-Cookie", c.String())
	w.Header().Add("Cache-Control", `no-cache="Set-Cookie"`)
}

type bufferedWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (bw *bufferedWriter) WriteHeader(code int) {
	if bw.status == 0 {
		bw.status = code
	}
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	return bw.buf.Write(b)
}

func (bw *bufferedWriter) flush() error {
	if bw.status == 0 && bw.buf.Len() == 0 {
		return nil
	}
	if bw.status != 0 {
		bw.ResponseWriter.WriteHeader(bw.status)
	}
	if _, err := bw.ResponseWriter.Write(bw.buf.Bytes()); err != nil {
		return fmt.Errorf("writing buffered response: %w", err)
	}
	return nil
}

// Authenticate rejects requests without a logged in user.
func Authenticate(sm *scs.SessionManager) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := sm.GetString(ctx, userIDKey)
			if id == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			ctx = SetClaims(ctx, Claims{UserID: id, Role: sm.GetString(ctx, roleKey)})
			return handler(ctx, w, r.WithContext(ctx))
		}
	}
}
