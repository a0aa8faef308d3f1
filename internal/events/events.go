package events

import (
	"encoding/json"

	"typerace/internal/players"
)

// Inbound event names.
const (
	CreateRoom     = "createRoom"
	JoinRoom       = "joinRoom"
	StartTest      = "startTest"
	UpdateProgress = "updateProgress"
)

// Outbound event names.
const (
	RoomCreated       = "roomCreated"
	RoomJoined        = "roomJoined"
	PlayerJoined      = "playerJoined"
	Countdown         = "countdown"
	StartTyping       = "startTyping"
	UpdateLeaderboard = "updateLeaderboard"
	FinalResults      = "finalResults"
	PlayerLeft        = "playerLeft"
	AdminRights       = "adminRights"
	Error             = "error"
)

// Envelope is the wire frame in both directions: a named event plus a payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ClientPayload covers every field a client may send; events ignore the fields
// they do not use.
type ClientPayload struct {
	RoomID    string `json:"roomId"`
	TypedText string `json:"typedText"`
}

type RoomCreatedPayload struct {
	RoomID  string `json:"roomId"`
	IsAdmin bool   `json:"isAdmin"`
}

type RoomJoinedPayload struct {
	IsAdmin bool `json:"isAdmin"`
}

// PlayerRef addresses a single participant, e.g. the admin notification when
// someone joins.
type PlayerRef struct {
	PlayerID string `json:"playerId"`
}

// Roster is the full member -> stats mapping. Every broadcast carries the
// whole mapping, never a delta.
type Roster struct {
	Players map[string]players.Stats `json:"players"`
}

type CountdownPayload struct {
	Count int `json:"count"`
}

type PlayerLeftPayload struct {
	PlayerID string                   `json:"playerId"`
	Players  map[string]players.Stats `json:"players"`
}

type AdminRightsPayload struct {
	IsAdmin bool `json:"isAdmin"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Marshal wraps a payload in an Envelope and encodes it.
func Marshal(event string, payload any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if payload != nil {
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
