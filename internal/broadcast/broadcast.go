package broadcast

import (
	"github.com/rs/zerolog"

	"typerace/internal/events"
	"typerace/internal/players"
)

// Sender delivers encoded frames. The websocket hub implements it; engine
// tests substitute a recorder. All sends are fire-and-forget.
type Sender interface {
	ToConn(connID string, data []byte)
	ToRoom(roomID string, data []byte)
	JoinRoom(roomID, connID string)
	LeaveRoom(roomID, connID string)
}

// Broadcaster formats outbound events so the engine never hand-builds
// payloads.
type Broadcaster struct {
	sender Sender
	log    zerolog.Logger
}

func NewBroadcaster(sender Sender, log zerolog.Logger) *Broadcaster {
	return &Broadcaster{sender: sender, log: log}
}

func (b *Broadcaster) Join(roomID, connID string) {
	b.sender.JoinRoom(roomID, connID)
}

func (b *Broadcaster) Leave(roomID, connID string) {
	b.sender.LeaveRoom(roomID, connID)
}

func (b *Broadcaster) RoomCreated(connID, roomID string, isAdmin bool) {
	b.toConn(connID, events.RoomCreated, events.RoomCreatedPayload{RoomID: roomID, IsAdmin: isAdmin})
}

func (b *Broadcaster) RoomJoined(connID string, isAdmin bool) {
	b.toConn(connID, events.RoomJoined, events.RoomJoinedPayload{IsAdmin: isAdmin})
}

// PlayerJoinedRef notifies a single connection (the room's admin) that a
// player arrived.
func (b *Broadcaster) PlayerJoinedRef(connID, playerID string) {
	b.toConn(connID, events.PlayerJoined, events.PlayerRef{PlayerID: playerID})
}

func (b *Broadcaster) PlayerJoined(roomID string, roster map[string]players.Stats) {
	b.toRoom(roomID, events.PlayerJoined, events.Roster{Players: roster})
}

func (b *Broadcaster) Countdown(roomID string, count int) {
	b.toRoom(roomID, events.Countdown, events.CountdownPayload{Count: count})
}

func (b *Broadcaster) StartTyping(roomID string) {
	b.toRoom(roomID, events.StartTyping, nil)
}

func (b *Broadcaster) Leaderboard(roomID string, roster map[string]players.Stats) {
	b.toRoom(roomID, events.UpdateLeaderboard, events.Roster{Players: roster})
}

func (b *Broadcaster) FinalResults(roomID string, roster map[string]players.Stats) {
	b.toRoom(roomID, events.FinalResults, events.Roster{Players: roster})
}

func (b *Broadcaster) PlayerLeft(roomID, playerID string, roster map[string]players.Stats) {
	b.toRoom(roomID, events.PlayerLeft, events.PlayerLeftPayload{PlayerID: playerID, Players: roster})
}

func (b *Broadcaster) AdminRights(connID string) {
	b.toConn(connID, events.AdminRights, events.AdminRightsPayload{IsAdmin: true})
}

func (b *Broadcaster) Error(connID, message string) {
	b.toConn(connID, events.Error, events.ErrorPayload{Message: message})
}

func (b *Broadcaster) toConn(connID, event string, payload any) {
	data, err := events.Marshal(event, payload)
	if err != nil {
		b.log.Error().Err(err).Str("event", event).Msg("marshal outbound event")
		return
	}
	b.sender.ToConn(connID, data)
}

func (b *Broadcaster) toRoom(roomID, event string, payload any) {
	data, err := events.Marshal(event, payload)
	if err != nil {
		b.log.Error().Err(err).Str("event", event).Msg("marshal outbound event")
		return
	}
	b.sender.ToRoom(roomID, data)
}
