package internal

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/aria/pkg/cookie"
)

const (
	defaultSessionName = "aria_session"
	defaultSessionTTL  = 30 * 24 * time.Hour
)

// Session is a per-request key/value store persisted in an encrypted
// cookie. Values round-trip through JSON, so numbers come back as
// float64 and structs as map[string]any.
//
// The session is written to the response only if it was modified, just
// before the first byte hits the wire.
type Session struct {
	id     string
	values map[string]any
	isNew  bool
	dirty  bool
}

func newSession() *Session {
	return &Session{
		id:     uuid.NewString(),
		values: map[string]any{},
		isNew:  true,
	}
}

// ID returns the stable session identifier.
func (s *Session) ID() string { return s.id }

// IsNew reports whether the session was created for this request rather
// than restored from the cookie.
func (s *Session) IsNew() bool { return s.isNew }

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the string stored under key, or "" when absent or of
// another type.
func (s *Session) GetString(key string) string {
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return ""
}

// Set stores a value and marks the session dirty.
func (s *Session) Set(key string, value any) {
	s.values[key] = value
	s.dirty = true
}

// Delete removes a key and marks the session dirty.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// Clear removes every value and marks the session dirty. A cleared
// restored session deletes its cookie on flush.
func (s *Session) Clear() {
	s.values = map[string]any{}
	s.dirty = true
}

// Keys returns the stored keys, sorted.
func (s *Session) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored values.
func (s *Session) Len() int { return len(s.values) }

type sessionPayload struct {
	ID     string         `json:"id"`
	Values map[string]any `json:"values,omitempty"`
}

// sessionStore reads and writes sessions through the cookie manager.
type sessionStore struct {
	manager *cookie.Manager
	name    string
	ttl     time.Duration
}

// load restores the session from the request cookie. A missing, expired,
// or tampered cookie yields a fresh session.
func (s *sessionStore) load(r *http.Request) *Session {
	raw, err := s.manager.GetEncrypted(r, s.name)
	if err != nil {
		return newSession()
	}
	var p sessionPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" {
		return newSession()
	}
	values := p.Values
	if values == nil {
		values = map[string]any{}
	}
	return &Session{id: p.ID, values: values}
}

// flush persists a dirty session. Clearing a restored session deletes the
// cookie; a fresh session that stayed empty writes nothing.
func (s *sessionStore) flush(w http.ResponseWriter, sess *Session) error {
	if sess == nil || !sess.dirty {
		return nil
	}
	if len(sess.values) == 0 {
		if !sess.isNew {
			s.manager.Delete(w, s.name)
		}
		return nil
	}
	b, err := json.Marshal(sessionPayload{ID: sess.id, Values: sess.values})
	if err != nil {
		return err
	}
	return s.manager.SetEncrypted(w, s.name, b, cookie.WithMaxAge(int(s.ttl.Seconds())))
}

// Session implements Context. The flush hook is registered on first
// access so even read-only loads keep rolling cookies honest.
func (c *requestContext) Session() (*Session, error) {
	if c.app.sessions == nil {
		return nil, ErrSessionsNotConfigured
	}
	if c.session != nil {
		return c.session, nil
	}
	c.session = c.app.sessions.load(c.req)
	c.w.OnBeforeWrite(func() {
		if err := c.app.sessions.flush(c.w.Unwrap(), c.session); err != nil {
			c.LogError("flush session", "error", err)
		}
	})
	return c.session, nil
}
