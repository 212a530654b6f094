package realtime

import "sync"

// Kind partitions connected actors.
type Kind string

// Presence partitions.
const (
	KindCustomer Kind = "customer"
	KindAdmin    Kind = "admin"
)

// Session is an attached realtime connection able to receive events.
// Implementations must not block in Emit.
type Session interface {
	// ID uniquely identifies the connection, not the actor.
	ID() string

	// Emit pushes one named event to the connection, best effort.
	Emit(event string, payload any)
}

// Registry tracks which actor is connected on which session. It holds one
// mapping per actor kind; a later join for the same actor replaces the
// previous session, so an actor is only ever tracked on their most recent
// connection. State is in-memory only and empty at process start.
//
// Connections are served on per-connection goroutines, so unlike a
// single-threaded event loop the maps need a lock.
type Registry struct {
	mu        sync.RWMutex
	customers map[string]Session
	admins    map[string]Session
}

// NewRegistry creates an empty presence registry.
func NewRegistry() *Registry {
	return &Registry{
		customers: make(map[string]Session),
		admins:    make(map[string]Session),
	}
}

func (r *Registry) partition(kind Kind) map[string]Session {
	if kind == KindAdmin {
		return r.admins
	}
	return r.customers
}

// Join registers the session for the actor, replacing any previous entry.
func (r *Registry) Join(kind Kind, actorID string, s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partition(kind)[actorID] = s
}

// Lookup returns the actor's current session, if any.
func (r *Registry) Lookup(kind Kind, actorID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.partition(kind)[actorID]
	return s, ok
}

// Remove drops every entry bound to the given session, scanning both
// partitions. Called on disconnect.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, partition := range []map[string]Session{r.customers, r.admins} {
		for id, s := range partition {
			if s.ID() == sessionID {
				delete(partition, id)
			}
		}
	}
}

// Admins returns every connected admin session.
func (r *Registry) Admins() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessions := make([]Session, 0, len(r.admins))
	for _, s := range r.admins {
		sessions = append(sessions, s)
	}
	return sessions
}

// Customers returns every connected customer session.
func (r *Registry) Customers() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessions := make([]Session, 0, len(r.customers))
	for _, s := range r.customers {
		sessions = append(sessions, s)
	}
	return sessions
}

// CustomerIDs returns the actor IDs of every connected customer.
func (r *Registry) CustomerIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.customers))
	for id := range r.customers {
		ids = append(ids, id)
	}
	return ids
}

// AdminOnline reports whether at least one admin is connected.
func (r *Registry) AdminOnline() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.admins) > 0
}
