package storage

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

const (
	sessionPrefix = "store:"
	profileKey    = "profile_id"
)

// Session keeps values inside the browser's own session, so every browser
// profile gets a private store that survives reloads for the session
// lifetime. It needs the session loaded into ctx by scs.LoadAndSave; without
// it every call reports ErrUnavailable.
type Session struct {
	sm    *scs.SessionManager
	quota int
}

func NewSession(sm *scs.SessionManager, quota int) *Session {
	return &Session{sm: sm, quota: quota}
}

func (s *Session) Get(ctx context.Context, key string) (b []byte, err error) {
	defer recoverUnavailable(&err)

	k := sessionPrefix + key
	if !s.sm.Exists(ctx, k) {
		return nil, ErrNotFound
	}
	return s.sm.GetBytes(ctx, k), nil
}

func (s *Session) Set(ctx context.Context, key string, value []byte) (err error) {
	defer recoverUnavailable(&err)

	if s.quota > 0 && len(value) > s.quota {
		return ErrQuotaExceeded
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.sm.Put(ctx, sessionPrefix+key, v)
	return nil
}

// ProfileID returns the id of the browser profile bound to the session in
// ctx, creating one on first use.
func ProfileID(ctx context.Context, sm *scs.SessionManager) (id string, err error) {
	defer recoverUnavailable(&err)

	if id = sm.GetString(ctx, profileKey); id != "" {
		return id, nil
	}
	id = uuid.NewString()
	sm.Put(ctx, profileKey, id)
	return id, nil
}

// scs panics when the request context carries no session.
func recoverUnavailable(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrUnavailable, r)
	}
}
