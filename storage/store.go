package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type Status int

const (
	Found Status = iota
	Absent
	Corrupt
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Absent:
		return "absent"
	case Corrupt:
		return "corrupt"
	case Unavailable:
		return "unavailable"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the outcome of a Load. Raw is only set when Status is Found
// and always holds syntactically valid JSON.
type Result struct {
	Status Status
	Raw    json.RawMessage
	Err    error
}

func (r Result) Found() bool { return r.Status == Found }

// Store reads and writes JSON values on a Medium. Neither Load nor Save
// panics or retries; each call is one best-effort attempt.
type Store struct {
	medium Medium
	log    logrus.FieldLogger
}

func New(m Medium, log logrus.FieldLogger) *Store {
	return &Store{medium: m, log: log}
}

func (s *Store) Load(ctx context.Context, key string) (res Result) {
	if s == nil || s.medium == nil {
		return Result{Status: Unavailable, Err: ErrUnavailable}
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{Status: Unavailable, Err: fmt.Errorf("%w: %v", ErrUnavailable, r)}
		}
	}()

	raw, err := s.medium.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		return Result{Status: Absent, Err: err}
	case err != nil:
		return Result{Status: Unavailable, Err: err}
	}

	if !json.Valid(raw) {
		return Result{Status: Corrupt, Err: fmt.Errorf("value under %q is not valid JSON", key)}
	}
	return Result{Status: Found, Raw: raw}
}

// Save encodes v and writes it under key. The error is informational: the
// caller's in-memory state stays authoritative whatever happens here.
func (s *Store) Save(ctx context.Context, key string, v any) (err error) {
	if s == nil || s.medium == nil {
		return ErrUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnavailable, r)
		}
		if err != nil && s.log != nil {
			s.log.WithFields(logrus.Fields{
				"key":   key,
				"error": err,
			}).Warn("state not persisted")
		}
	}()

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding value for %q: %w", key, err)
	}
	if err := s.medium.Set(ctx, key, b); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}
