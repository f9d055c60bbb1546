package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps live sessions in memory, keyed by an opaque random id
// carried in a cookie. Sessions are created on login and deleted on
// logout; only Authorized sessions are worth storing, the transient
// rejection states are rendered and discarded by the caller.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Create stores the session under a fresh opaque id and returns the id.
func (st *Store) Create(s Session) string {
	id := uuid.NewString()
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[id] = s
	return id
}

// Get returns the session for the id, if one exists.
func (st *Store) Get(id string) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes the session for the id. Deleting an unknown id is a
// no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
