package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/session"
)

// entry is one live session. mu is held only while reading or mutating
// state, never across a provider call.
type entry struct {
	id uuid.UUID

	mu      sync.Mutex
	state   *session.State
	touched time.Time
}

// registry keeps the sessions of the HTTP API in memory. Sessions idle for
// longer than the TTL are dropped by the janitor.
type registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	cat      *i18n.Catalog
	ttl      time.Duration
	now      func() time.Time
}

// newRegistry creates an empty registry.
func newRegistry(cat *i18n.Catalog, ttl time.Duration, now func() time.Time) *registry {
	if now == nil {
		now = time.Now
	}
	return &registry{
		sessions: make(map[uuid.UUID]*entry),
		cat:      cat,
		ttl:      ttl,
		now:      now,
	}
}

// create starts a new session.
func (r *registry) create() *entry {
	e := &entry{
		id:      uuid.New(),
		state:   session.New(r.cat),
		touched: r.now(),
	}
	r.mu.Lock()
	r.sessions[e.id] = e
	r.mu.Unlock()
	return e
}

// get returns the session and marks it used.
func (r *registry) get(id uuid.UUID) (*entry, bool) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	e.mu.Lock()
	e.touched = r.now()
	e.mu.Unlock()
	return e, true
}

// remove removes a session. It reports whether it existed.
func (r *registry) remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// count returns the number of live sessions.
func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweep drops sessions idle for longer than the TTL and returns how many
// were removed. A session with a request in flight is kept.
func (r *registry) sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		e.mu.Lock()
		idle := e.touched.Before(cutoff) && !e.state.Loading
		e.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// runJanitor sweeps at the given interval until ctx ends.
func (r *registry) runJanitor(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.sweep(); n > 0 {
				log.Info().Int("removed", n).Msg("expired sessions swept")
			}
		}
	}
}
