package players

import "sync"

type member struct {
	stats  Stats
	joined int
}

// Store holds one room's participants keyed by connection id.
type Store struct {
	mu      sync.Mutex
	members map[string]*member
	seq     int
}

func NewStore() *Store {
	return &Store{
		members: make(map[string]*member),
	}
}

// Add inserts id with zeroed stats. A re-join overwrites the existing entry,
// resetting its stats to zero, but keeps the original join order.
func (s *Store) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.members[id]; ok {
		m.stats = zeroStats()
		return
	}
	s.seq++
	s.members[id] = &member{stats: zeroStats(), joined: s.seq}
}

func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return false
	}
	delete(s.members, id)
	return true
}

func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[id]
	return ok
}

func (s *Store) Get(id string) (Stats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return Stats{}, false
	}
	return m.stats, true
}

func (s *Store) SetProgress(id string, wpm, progress int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return false
	}
	m.stats.WPM = wpm
	m.stats.Progress = progress
	return true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

// Snapshot copies the full id -> stats mapping for broadcast.
func (s *Store) Snapshot() map[string]Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[string]Stats, len(s.members))
	for id, m := range s.members {
		snap[id] = m.stats
	}
	return snap
}

// FirstJoined returns the id of the earliest-joined remaining member. Admin
// failover promotes this member so the outcome does not depend on map order.
func (s *Store) FirstJoined() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		first string
		best  int
		found bool
	)
	for id, m := range s.members {
		if !found || m.joined < best {
			first = id
			best = m.joined
			found = true
		}
	}
	return first, found
}
