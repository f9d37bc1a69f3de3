package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	type payload struct {
		CourseID int `json:"courseId"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "ok", body: `{"courseId":3}` + "\n"},
		{name: "empty", body: "", wantErr: ErrEmptyBody.Error()},
		{name: "unknown field", body: `{"course":3}`, wantErr: `json: unknown field "course"`},
		{name: "two values", body: `{"courseId":3}{"courseId":4}`, wantErr: "request body must hold a single JSON value"},
		{name: "too large", body: `{"courseId":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, wantErr: "request body must not exceed 1048576 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(tt.body))
			var p payload
			err := Decode(httptest.NewRecorder(), r, &p)

			if tt.wantErr == "" {
				if err != nil || p.CourseID != 3 {
					t.Fatalf("expected courseId 3, got %d, %v", p.CourseID, err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("expected %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRespond(t *testing.T) {
	w := httptest.NewRecorder()
	if err := Respond(context.Background(), w, map[string]int{"cart": 2}, http.StatusOK); err != nil {
		t.Fatal(err)
	}
	if w.Header().Get("Cache-Control") != "no-store" || w.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected headers %v", w.Header())
	}
	if got := w.Body.String(); got != `{"cart":2}` {
		t.Fatalf("unexpected body %s", got)
	}

	w = httptest.NewRecorder()
	if err := Respond(context.Background(), w, nil, http.StatusNoContent); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("expected an empty 204, got %d %q", w.Code, w.Body.String())
	}
}

func TestQueryBool(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/courses?free=true&bad=maybe", nil)

	if got, err := QueryBool(r, "free"); err != nil || !got {
		t.Fatalf("expected true, got %v, %v", got, err)
	}
	if got, err := QueryBool(r, "missing"); err != nil || got {
		t.Fatalf("expected false, got %v, %v", got, err)
	}
	if _, err := QueryBool(r, "bad"); err == nil {
		t.Fatal("expected an error for a non boolean value")
	}
}

func TestWrapMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	var order []string
	var handler Handler = func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		order = append(order, "handler")
		return errors.New("handled")
	}
	mw := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				order = append(order, name)
				return next(ctx, w, r)
			}
		}
	}
	h := WrapMiddleware([]Middleware{mw("outer"), nil, mw("inner")}, handler)
	err := h(context.Background(), httptest.NewRecorder(), r)
	if err == nil || err.Error() != "handled" {
		t.Fatalf("expected the handler error, got %v", err)
	}
	if got := strings.Join(order, ","); got != "outer,inner,handler" {
		t.Fatalf("unexpected order %s", got)
	}
}
