// Package presence tracks the remote participants currently on a floor.
// The store is mutated only by the transport session in response to server
// events; everything else just reads it.
package presence

import "sync"

// Participant is one remote user's synchronized avatar state. Positions are
// percentage-space. UpdatedAt is the server timestamp (ms) of the last
// position update and is used to reject stale moves arriving out of order
// around a reconnect.
type Participant struct {
	ID        string
	Name      string
	X, Y      float64
	UpdatedAt int64
}

// Store holds at most one Participant per user id.
type Store struct {
	mu      sync.RWMutex
	players map[string]Participant
}

func NewStore() *Store {
	return &Store{players: make(map[string]Participant)}
}

// Replace swaps the entire contents for a full snapshot.
func (s *Store) Replace(players []Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[string]Participant, len(players))
	for _, p := range players {
		s.players[p.ID] = p
	}
}

// Upsert inserts a participant, or replaces the existing record wholesale if
// the id is already known. A duplicate join is an update, never a second entry.
func (s *Store) Upsert(p Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
}

// Move updates position fields only. Returns false when the id is unknown or
// the update is older than what is already stored; both are dropped silently.
func (s *Store) Move(id string, x, y float64, ts int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		return false
	}
	if ts != 0 && ts < p.UpdatedAt {
		return false
	}
	p.X, p.Y = x, y
	p.UpdatedAt = ts
	s.players[id] = p
	return true
}

// Remove deletes a participant. Unknown ids are a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
}

// Clear empties the store. Called on explicit disconnect only; a dropped
// connection keeps the (presumed stale) contents until a reconnect resupplies
// them.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[string]Participant)
}

func (s *Store) Get(id string) (Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	return p, ok
}

// List returns a copy of all participants, in no particular order.
func (s *Store) List() []Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Participant, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
