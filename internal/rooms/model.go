package rooms

import (
	"sync"
	"time"

	"typerace/internal/players"
)

// Phase is a room's lifecycle state. Transitions only move forward, except
// that a finished room may be started again.
type Phase string

const (
	PhaseIdle      = Phase("idle")
	PhaseCountdown = Phase("countdown")
	PhaseRunning   = Phase("running")
	PhaseFinished  = Phase("finished")
)

// Room is one independent race session. All mutation happens under Mu,
// including the countdown/deadline callbacks, so rooms never need cross-room
// coordination.
type Room struct {
	ID       string
	Duration time.Duration

	Mu        sync.Mutex
	AdminID   string
	Members   *players.Store
	Phase     Phase
	StartTime time.Time

	stop   chan struct{}
	closed bool
}

func New(id, creatorID string, duration time.Duration) *Room {
	r := &Room{
		ID:       id,
		Duration: duration,
		AdminID:  creatorID,
		Members:  players.NewStore(),
		Phase:    PhaseIdle,
		stop:     make(chan struct{}),
	}
	r.Members.Add(creatorID)
	return r
}

// Stop returns the channel closed when the room shuts down. The race
// lifecycle goroutine selects on it next to its timers.
func (r *Room) Stop() <-chan struct{} {
	return r.stop
}

// Close releases any pending countdown/race timers by signalling the
// lifecycle goroutine. Safe to call more than once. Caller must hold Mu.
func (r *Room) Close() {
	if r.closed {
		return
	}
	r.closed = true
	close(r.stop)
}

// Closed reports whether Close has been called. Caller must hold Mu.
func (r *Room) Closed() bool {
	return r.closed
}
