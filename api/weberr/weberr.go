// Package weberr decorates errors with what the HTTP layer needs to answer
// them: a response body and status, log fields and extra headers.
package weberr

import (
	"errors"
	"net/http"
)

type Opt func(error) error

func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}

// WithHeader sets key on the error response.
func WithHeader(key, value string) Opt {
	return func(err error) error {
		return &headerError{error: err, key: key, value: value}
	}
}

// Response returns the outermost body and status attached to err.
func Response(err error) (body interface{}, status int, ok bool) {
	var re *responseError
	if errors.As(err, &re) {
		return re.body, re.status, true
	}
	return nil, 0, false
}

// Fields merges the log fields of every layer of err, outer layers winning.
func Fields(err error) (map[string]interface{}, bool) {
	var out map[string]interface{}
	for err != nil {
		if fe, ok := err.(*fieldsError); ok {
			if out == nil {
				out = make(map[string]interface{}, len(fe.fields))
			}
			for k, v := range fe.fields {
				if _, set := out[k]; !set {
					out[k] = v
				}
			}
		}
		err = errors.Unwrap(err)
	}
	return out, out != nil
}

// Headers collects the headers attached to err.
func Headers(err error) http.Header {
	h := http.Header{}
	for err != nil {
		if he, ok := err.(*headerError); ok && h.Get(he.key) == "" {
			h.Set(he.key, he.value)
		}
		err = errors.Unwrap(err)
	}
	return h
}

type responseError struct {
	error
	body   interface{}
	status int
}

func (e *responseError) Unwrap() error { return e.error }

type fieldsError struct {
	error
	fields map[string]interface{}
}

func (e *fieldsError) Unwrap() error { return e.error }

type headerError struct {
	error
	key, value string
}

func (e *headerError) Unwrap() error { return e.error }
