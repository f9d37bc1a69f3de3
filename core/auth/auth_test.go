package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
	"github.com/irsalhamdi/learnhub/core/notify"
	"golang.org/x/crypto/bcrypt"
)

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory(bcrypt.MinCost)

	u, err := dir.Create(ctx, UserNew{Name: "Demo", Email: " Demo@LearnHub.dev ", Password: "password123"}, RoleUser)
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if u.Email != "demo@learnhub.dev" || u.ID == "" {
		t.Fatalf("unexpected user %+v", u)
	}

	if _, err := dir.Create(ctx, UserNew{Name: "Again", Email: "demo@learnhub.dev", Password: "password123"}, RoleUser); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	got, err := dir.Authenticate(ctx, Credentials{Email: "DEMO@learnhub.dev", Password: "password123"})
	if err != nil || got.ID != u.ID {
		t.Fatalf("expected to authenticate %s, got %+v, %v", u.ID, got, err)
	}

	for _, cred := range []Credentials{
		{Email: "demo@learnhub.dev", Password: "wrong-password"},
		{Email: "nobody@learnhub.dev", Password: "password123"},
	} {
		if _, err := dir.Authenticate(ctx, cred); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", cred.Email, err)
		}
	}

	if _, err := dir.Fetch(ctx, u.ID); err != nil {
		t.Fatalf("fetching user: %v", err)
	}
	if _, err := dir.Fetch(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

type recorder struct {
	kinds []notify.Kind
}

func (r *recorder) Notify(_ context.Context, kind notify.Kind, _ string) {
	r.kinds = append(r.kinds, kind)
}

// serve mounts h behind the session middleware the way the API does, with
// weberr responses written as JSON.
func serve(sm *scs.SessionManager, n notify.Notifier, h web.Handler, mw ...web.Middleware) http.Handler {
	errs := func(next web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if err := next(ctx, w, r); err != nil {
				body, status, ok := weberr.Response(err)
				if !ok {
					status = http.StatusInternalServerError
				}
				return web.Respond(ctx, w, body, status)
			}
			return nil
		}
	}
	chain := append([]web.Middleware{LoadAndSave(sm), errs}, mw...)
	h = web.WrapMiddleware(chain, h)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := notify.NewContext(r.Context(), n)
		_ = h(ctx, w, r.WithContext(ctx))
	})
}

func post(t *testing.T, c *http.Client, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := c.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return resp
}

func TestLoginFlow(t *testing.T) {
	ctx := context.Background()
	sm := scs.New()
	dir := NewDirectory(bcrypt.MinCost)
	if _, err := dir.Create(ctx, UserNew{Name: "Demo", Email: "demo@learnhub.dev", Password: "password123"}, RoleUser); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	mux := http.NewServeMux()
	mux.Handle("/login", serve(sm, rec, HandleLogin(dir, sm)))
	mux.Handle("/logout", serve(sm, rec, HandleLogout(sm)))
	mux.Handle("/current", serve(sm, rec, HandleShowCurrent(dir), Authenticate(sm)))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	c := srv.Client()
	c.Jar = jar

	resp, err := c.Get(srv.URL + "/current")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous current user: expected 401, got %s", resp.Status)
	}

	if resp := post(t, c, srv.URL+"/login", Credentials{Email: "demo@learnhub.dev", Password: "nope"}); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %s", resp.Status)
	}
	if len(rec.kinds) != 1 || rec.kinds[0] != notify.Error {
		t.Fatalf("failed login should notify one error, got %v", rec.kinds)
	}

	if resp := post(t, c, srv.URL+"/login", Credentials{Email: "demo@learnhub.dev", Password: "password123"}); resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %s", resp.Status)
	}

	resp, err = c.Get(srv.URL + "/current")
	if err != nil {
		t.Fatal(err)
	}
	var u User
	err = json.NewDecoder(resp.Body).Decode(&u)
	resp.Body.Close()
	if err != nil || resp.StatusCode != http.StatusOK || u.Email != "demo@learnhub.dev" {
		t.Fatalf("current user after login: %s, %+v, %v", resp.Status, u, err)
	}

	if resp := post(t, c, srv.URL+"/logout", nil); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %s", resp.Status)
	}

	resp, err = c.Get(srv.URL + "/current")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("after logout: expected 401, got %s", resp.Status)
	}
}

func TestLoginValidation(t *testing.T) {
	sm := scs.New()
	srv := httptest.NewServer(serve(sm, notify.Discard, HandleLogin(NewDirectory(bcrypt.MinCost), sm)))
	defer srv.Close()

	if resp := post(t, srv.Client(), srv.URL, Credentials{Email: "not-an-email", Password: "x"}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %s", resp.Status)
	}
}
