// Package race implements the room session state machine: admission, admin
// authority, the countdown/running/finished lifecycle, per-participant WPM
// computation, and disconnect-driven cleanup. Every operation is keyed by the
// opaque connection id the transport assigns; failures are dropped or answered
// with a single error event, never fatal.
package race

import (
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"typerace/internal/broadcast"
	"typerace/internal/rooms"
)

const charsPerWord = 5

type Config struct {
	RaceDuration  time.Duration
	CountdownFrom int
}

func DefaultConfig() Config {
	return Config{
		RaceDuration:  60 * time.Second,
		CountdownFrom: 3,
	}
}

type Engine struct {
	registry *rooms.Store
	bc       *broadcast.Broadcaster
	clock    clockwork.Clock
	cfg      Config
	log      zerolog.Logger
}

func NewEngine(registry *rooms.Store, bc *broadcast.Broadcaster, clock clockwork.Clock, cfg Config, log zerolog.Logger) *Engine {
	return &Engine{
		registry: registry,
		bc:       bc,
		clock:    clock,
		cfg:      cfg,
		log:      log,
	}
}

// CreateRoom registers a new room with the creator as admin and sole member,
// then acknowledges the creator and seeds the room's leaderboard.
func (e *Engine) CreateRoom(roomID, connID string) {
	if roomID == "" {
		return
	}
	room := e.registry.Create(roomID, connID, e.cfg.RaceDuration)

	e.bc.Join(roomID, connID)
	e.bc.RoomCreated(connID, roomID, true)

	room.Mu.Lock()
	roster := room.Members.Snapshot()
	room.Mu.Unlock()
	e.bc.Leaderboard(roomID, roster)

	e.log.Info().Str("room_id", roomID).Str("conn_id", connID).Msg("room created")
}

// JoinRoom adds the connection to an existing room regardless of phase; a
// mid-race joiner simply starts at zero progress. The admin is notified first,
// then the room sees the new roster, then the joiner gets its admin status.
func (e *Engine) JoinRoom(roomID, connID string) {
	room := e.registry.Get(roomID)
	if room == nil {
		e.bc.Error(connID, "Room not found")
		return
	}

	room.Mu.Lock()
	if room.Closed() {
		room.Mu.Unlock()
		e.bc.Error(connID, "Room not found")
		return
	}
	room.Members.Add(connID)
	adminID := room.AdminID
	roster := room.Members.Snapshot()
	room.Mu.Unlock()

	e.bc.Join(roomID, connID)
	e.bc.PlayerJoinedRef(adminID, connID)
	e.bc.PlayerJoined(roomID, roster)
	e.bc.RoomJoined(connID, connID == adminID)

	e.log.Info().Str("room_id", roomID).Str("conn_id", connID).Msg("player joined")
}

// StartTest begins the countdown. Silently ignored unless the requester is
// the room's admin and the room is idle or finished; a start during an active
// countdown or race would arm duplicate timers.
func (e *Engine) StartTest(roomID, connID string) {
	room := e.registry.Get(roomID)
	if room == nil {
		return
	}

	room.Mu.Lock()
	if room.Closed() || room.AdminID != connID {
		room.Mu.Unlock()
		return
	}
	if room.Phase != rooms.PhaseIdle && room.Phase != rooms.PhaseFinished {
		room.Mu.Unlock()
		return
	}
	room.Phase = rooms.PhaseCountdown
	room.Mu.Unlock()

	e.log.Info().Str("room_id", roomID).Msg("race countdown started")
	go e.runRace(room)
}

// runRace owns the room's timers for one race: countdown ticks, the running
// transition, and the finish deadline. It exits without emitting anything
// further as soon as the room is closed.
func (e *Engine) runRace(room *rooms.Room) {
	ticker := e.clock.NewTicker(time.Second)
	count := e.cfg.CountdownFrom
	for count >= 0 {
		select {
		case <-room.Stop():
			ticker.Stop()
			return
		case <-ticker.Chan():
			room.Mu.Lock()
			if room.Closed() {
				room.Mu.Unlock()
				ticker.Stop()
				return
			}
			e.bc.Countdown(room.ID, count)
			room.Mu.Unlock()
			count--
		}
	}
	ticker.Stop()

	room.Mu.Lock()
	if room.Closed() {
		room.Mu.Unlock()
		return
	}
	room.Phase = rooms.PhaseRunning
	room.StartTime = e.clock.Now()
	e.bc.StartTyping(room.ID)
	duration := room.Duration
	room.Mu.Unlock()

	timer := e.clock.NewTimer(duration)
	select {
	case <-room.Stop():
		timer.Stop()
		return
	case <-timer.Chan():
	}

	room.Mu.Lock()
	if room.Closed() {
		room.Mu.Unlock()
		return
	}
	room.Phase = rooms.PhaseFinished
	e.bc.FinalResults(room.ID, room.Members.Snapshot())
	room.Mu.Unlock()

	e.log.Info().Str("room_id", room.ID).Msg("race finished")
}

// UpdateProgress recomputes one participant's WPM and progress from the raw
// typed text, then re-broadcasts the full leaderboard. Dropped unless the
// room exists, is running, and the sender is a member.
func (e *Engine) UpdateProgress(roomID, connID, typedText string) {
	room := e.registry.Get(roomID)
	if room == nil {
		return
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if room.Closed() || room.Phase != rooms.PhaseRunning || !room.Members.Contains(connID) {
		return
	}

	elapsed := e.clock.Now().Sub(room.StartTime).Minutes()
	wpm := 0
	if elapsed > 0 {
		words := float64(len(typedText)) / charsPerWord
		wpm = int(math.Round(words / elapsed))
	}
	room.Members.SetProgress(connID, wpm, len(typedText))

	e.bc.Leaderboard(roomID, room.Members.Snapshot())
}

// Disconnect removes the connection from every room it belongs to. The
// earliest-joined survivor inherits admin authority; an emptied room is closed
// (releasing its timers) and deleted with no further broadcast.
func (e *Engine) Disconnect(connID string) {
	for _, room := range e.registry.ContainsConn(connID) {
		room.Mu.Lock()
		if room.Closed() || !room.Members.Remove(connID) {
			room.Mu.Unlock()
			continue
		}
		e.bc.Leave(room.ID, connID)

		if room.AdminID == connID {
			next, ok := room.Members.FirstJoined()
			if !ok {
				room.Close()
				room.Mu.Unlock()
				e.registry.Delete(room.ID)
				e.log.Info().Str("room_id", room.ID).Msg("room emptied, deleted")
				continue
			}
			room.AdminID = next
			e.bc.AdminRights(next)
			e.log.Info().Str("room_id", room.ID).Str("conn_id", next).Msg("admin rights transferred")
		}

		e.bc.PlayerLeft(room.ID, connID, room.Members.Snapshot())
		room.Mu.Unlock()
	}
}
