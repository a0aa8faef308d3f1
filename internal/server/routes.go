package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"typerace/internal/broadcast"
	"typerace/internal/config"
	"typerace/internal/race"
	"typerace/internal/rooms"
	"typerace/internal/wshub"
)

func Run() error {
	cfg := config.Load()
	logger := newLogger(cfg)

	hub := wshub.NewHub(logger)
	bc := broadcast.NewBroadcaster(hub, logger)
	registry := rooms.NewStore()
	engine := race.NewEngine(registry, bc, clockwork.NewRealClock(), race.Config{
		RaceDuration:  cfg.RaceDuration(),
		CountdownFrom: cfg.CountdownFrom,
	}, logger)

	srv := &Server{
		Hub:    hub,
		Engine: engine,
		Log:    logger,
		Cfg:    cfg,
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(newMux(srv))

	addr := "0.0.0.0:" + cfg.Port
	logger.Info().Str("addr", addr).Msg("server listening")
	return http.ListenAndServe(addr, handler)
}

func newMux(srv *Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleHealth)
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/ws", srv.handleWS)
	return mux
}

func newLogger(cfg config.Config) zerolog.Logger {
	if cfg.PrettyLog {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// originPatterns converts configured origins into the host patterns the
// websocket accept checks, e.g. "http://localhost:3000" -> "localhost:3000".
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		out = append(out, o)
	}
	return out
}
