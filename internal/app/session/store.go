package session

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Store keeps session state in memory keyed by a session id carried in a
// cookie. Entries expire with the configured TTL; expiry is the only way a
// session ends, there is no logout transition.
type Store struct {
	cache *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	return &Store{cache: gocache.New(ttl, 2*ttl)}
}

// Create stores a fresh initial state and returns its session id.
func (s *Store) Create() (string, State) {
	id := uuid.NewString()
	state := NewState()
	s.cache.SetDefault(id, state)
	return id, state
}

// Get returns the state for a session id, or (zero, false) when the session
// is unknown or expired.
func (s *Store) Get(id string) (State, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return State{}, false
	}
	state, ok := v.(State)
	return state, ok
}

// Put replaces the state for an existing session id, refreshing its TTL.
func (s *Store) Put(id string, state State) {
	s.cache.SetDefault(id, state)
}

// Destroy drops a session immediately.
func (s *Store) Destroy(id string) {
	s.cache.Delete(id)
}
