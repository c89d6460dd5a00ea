// Package session keeps one value per browser session, keyed by a sealed
// cookie. Values live in memory only.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "pdp_session"

// Sealer protects the session id carried in the cookie. *crypto.Service
// satisfies it.
type Sealer interface {
	Seal(plain []byte) (string, error)
	Open(token string) ([]byte, error)
}

type entry[V any] struct {
	value    V
	lastSeen time.Time
}

type Store[V any] struct {
	sealer   Sealer
	newValue func() V
	ttl      time.Duration
	secure   bool
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*entry[V]
}

func NewStore[V any](sealer Sealer, ttl time.Duration, secure bool, newValue func() V) *Store[V] {
	return &Store[V]{
		sealer:   sealer,
		newValue: newValue,
		ttl:      ttl,
		secure:   secure,
		now:      time.Now,
		entries:  map[string]*entry[V]{},
	}
}

// Get returns the value for the request's session, starting a new session
// (and setting the cookie) when the cookie is missing, tampered or expired.
// When the cookie cannot be sealed the fresh value is returned unstored.
func (s *Store[V]) Get(w http.ResponseWriter, r *http.Request) V {
	id, ok := s.sessionID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if ok {
		if e, found := s.entries[id]; found && now.Sub(e.lastSeen) <= s.ttl {
			e.lastSeen = now
			return e.value
		}
		delete(s.entries, id)
	}

	id = uuid.NewString()
	sealed, err := s.sealer.Seal([]byte(id))
	if err != nil {
		slog.Warn("session cookie seal failed", "err", err)
		return s.newValue()
	}
	e := &entry[V]{value: s.newValue(), lastSeen: now}
	s.entries[id] = e
	s.setCookie(w, sealed)
	return e.value
}

// Reset replaces the session's value with a fresh one, if the session exists.
func (s *Store[V]) Reset(r *http.Request) {
	id, ok := s.sessionID(r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, found := s.entries[id]; found {
		e.value = s.newValue()
		e.lastSeen = s.now()
	}
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep evicts sessions idle for longer than the TTL.
func (s *Store[V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	evicted := 0
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}

func (s *Store[V]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store[V]) sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	plain, err := s.sealer.Open(cookie.Value)
	if err != nil {
		return "", false
	}
	return string(plain), true
}

func (s *Store[V]) setCookie(w http.ResponseWriter, sealed string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sealed,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
