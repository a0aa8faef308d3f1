package server

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"typerace/internal/config"
	"typerace/internal/events"
	"typerace/internal/race"
	"typerace/internal/wshub"
)

const sendBufferSize = 32

type Server struct {
	Hub    *wshub.Hub
	Engine *race.Engine
	Log    zerolog.Logger
	Cfg    config.Config
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/health" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("typing race server is running")); err != nil {
		s.Log.Warn().Err(err).Msg("write health response")
	}
}

// handleWS upgrades the connection, assigns it an opaque id, and pumps frames
// between the socket and the engine until the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(s.Cfg.AllowedOrigins),
	})
	if err != nil {
		s.Log.Warn().Err(err).Msg("websocket accept failed")
		return
	}

	connID := uuid.New().String()
	client := &wshub.Client{
		ID:   connID,
		Conn: conn,
		Send: make(chan []byte, sendBufferSize),
	}
	s.Hub.Register(client)
	s.Log.Info().Str("conn_id", connID).Msg("client connected")

	ctx := r.Context()
	go client.WritePump(ctx)

	defer func() {
		s.Engine.Disconnect(connID)
		s.Hub.Unregister(connID)
		conn.Close(websocket.StatusNormalClosure, "")
		s.Log.Info().Str("conn_id", connID).Msg("client disconnected")
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var env events.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.Log.Warn().Err(err).Str("conn_id", connID).Msg("dropping malformed frame")
			continue
		}
		s.dispatch(connID, env)
	}
}

// dispatch routes one inbound event to the engine. Unknown events and bad
// payloads are dropped; nothing a client sends can take the process down.
func (s *Server) dispatch(connID string, env events.Envelope) {
	var p events.ClientPayload
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &p); err != nil {
			s.Log.Warn().Err(err).Str("conn_id", connID).Str("event", env.Event).Msg("dropping bad payload")
			return
		}
	}

	switch env.Event {
	case events.CreateRoom:
		s.Engine.CreateRoom(p.RoomID, connID)
	case events.JoinRoom:
		s.Engine.JoinRoom(p.RoomID, connID)
	case events.StartTest:
		s.Engine.StartTest(p.RoomID, connID)
	case events.UpdateProgress:
		s.Engine.UpdateProgress(p.RoomID, connID, p.TypedText)
	default:
		s.Log.Debug().Str("conn_id", connID).Str("event", env.Event).Msg("unknown event")
	}
}
