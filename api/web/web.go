// Package web holds the handler signature shared by every route and the
// helpers handlers use to read requests and write JSON responses.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// MaxBodyBytes bounds every decoded request body.
const MaxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("request body is empty")

type Handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

type Middleware func(Handler) Handler

// WrapMiddleware applies mw so that mw[0] is the outermost layer. Nil
// entries are skipped.
func WrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if m := mw[i]; m != nil {
			handler = m(handler)
		}
	}
	return handler
}

// Respond writes data as JSON. Responses carry per-browser state, so they
// are never cached.
func Respond(ctx context.Context, w http.ResponseWriter, data interface{}, statusCode int) error {
	w.Header().Set("Cache-Control", "no-store")

	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("cannot marshal response data: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("cannot write response data to response writer: %w", err)
	}
	return nil
}

// Decode reads a single JSON value of at most MaxBodyBytes, refusing
// unknown fields and trailing data.
func Decode(w http.ResponseWriter, r *http.Request, val interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(val); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &tooLarge):
			return fmt.Errorf("request body must not exceed %d bytes", MaxBodyBytes)
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must hold a single JSON value")
	}
	return nil
}

func Param(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}

// QueryBool reads an optional boolean query parameter.
func QueryBool(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", key)
	}
	return b, nil
}
