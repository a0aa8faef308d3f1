package rooms

import (
	"sync"
	"time"
)

// Store is the registry mapping room id to Room.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
	}
}

// Create inserts a new Room with the creator as admin and sole member.
// Creating over an existing id replaces it; the prior room is closed first so
// its timers cannot fire against a replaced session.
func (s *Store) Create(roomID, creatorID string, duration time.Duration) *Room {
	room := New(roomID, creatorID, duration)

	s.mu.Lock()
	prior := s.rooms[roomID]
	s.rooms[roomID] = room
	s.mu.Unlock()

	if prior != nil {
		prior.Mu.Lock()
		prior.Close()
		prior.Mu.Unlock()
	}
	return room
}

// Get returns the room or nil.
func (s *Store) Get(roomID string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[roomID]
}

// Delete removes the room from the registry. The caller must have closed it
// already; Delete does not touch timers.
func (s *Store) Delete(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}

// ContainsConn returns every room the connection is currently a member of.
// A linear scan is fine at this scale; a reverse index would only pay off
// with far more rooms per process.
func (s *Store) ContainsConn(connID string) []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Room
	for _, r := range s.rooms {
		if r.Members.Contains(connID) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
