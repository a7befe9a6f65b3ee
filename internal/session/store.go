package session

import "sync"

// Store persists the session record. Set and Clear replace the whole
// record; readers never observe a half-written session.
type Store interface {
	Get() (Session, bool)
	Set(Session) error
	Clear() error
}

// MemoryStore keeps the session in process memory. Used by tests and by
// commands that should not touch the on-disk store.
type MemoryStore struct {
	mu      sync.Mutex
	session Session
	present bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.present
}

func (s *MemoryStore) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
	s.present = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	s.present = false
	return nil
}
