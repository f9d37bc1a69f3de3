package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alicebob/miniredis/v2"
	"github.com/irsalhamdi/learnhub/api"
	"github.com/irsalhamdi/learnhub/core/auth"
	"github.com/irsalhamdi/learnhub/core/course"
	"github.com/irsalhamdi/learnhub/core/notify"
	"github.com/irsalhamdi/learnhub/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoEmail = "demo@learnhub.dev"
	demoPass  = "learnhub123"
)

type TestEnv struct {
	*httptest.Server
	Catalog *course.Catalog
	Users   *auth.Directory
}

type envOption func(*testing.T, *scs.SessionManager) storage.Source

// withRedis keeps the browser state in a throwaway redis server.
func withRedis(t *testing.T, sm *scs.SessionManager) storage.Source {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisSource(client, sm, time.Hour)
}

func NewTestEnv(t *testing.T, opts ...envOption) *TestEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cat, err := course.LoadEmbedded()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	users := auth.NewDirectory(bcrypt.MinCost)
	if _, err := users.Create(context.Background(), auth.UserNew{Name: "Demo", Email: demoEmail, Password: demoPass}, auth.RoleUser); err != nil {
		t.Fatalf("creating demo user: %v", err)
	}

	sm := scs.New()
	var src storage.Source = storage.NewSessionSource(sm, 0)
	for _, o := range opts {
		src = o(t, sm)
	}

	mux := api.APIMux(api.APIConfig{
		Log:         log,
		Session:     sm,
		Store:       src,
		Catalog:     cat,
		Users:       users,
		NotifyTTL:   time.Minute,
		NotifyLimit: 20,
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	srv.Client().Jar = jar

	return &TestEnv{Server: srv, Catalog: cat, Users: users}
}

// NewBrowser returns a client with its own cookie jar, i.e. a separate
// browser profile.
func (env *TestEnv) NewBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar, Transport: env.Client().Transport}
}

// Do sends a JSON request and decodes the JSON response into out when out
// is not nil. It fails the test when the status differs from want.
func (env *TestEnv) Do(t *testing.T, c *http.Client, method, path string, body, out any, want int) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, env.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := c.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != want {
		msg, _ := io.ReadAll(w.Body)
		t.Fatalf("%s %s: expected status %d, got %s: %s", method, path, want, w.Status, msg)
	}

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding response: %v", method, path, err)
		}
	}
}

func (env *TestEnv) Login(t *testing.T, c *http.Client, email, pass string) {
	t.Helper()
	env.Do(t, c, http.MethodPost, "/auth/login", auth.Credentials{Email: email, Password: pass}, nil, http.StatusOK)
}

func (env *TestEnv) Toasts(t *testing.T, c *http.Client) []string {
	t.Helper()
	var got []notify.Notification
	env.Do(t, c, http.MethodGet, "/notifications", nil, &got, http.StatusOK)

	msgs := []string{}
	for _, n := range got {
		msgs = append(msgs, fmt.Sprintf("%s: %s", n.Kind, n.Message))
	}
	return msgs
}
