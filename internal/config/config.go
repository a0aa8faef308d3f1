package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	RaceDurationMs int
	CountdownFrom  int
	PrettyLog      bool
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RaceDurationMs: getEnvInt("RACE_DURATION_MS", 60000),
		CountdownFrom:  getEnvInt("COUNTDOWN_FROM", 3),
		PrettyLog:      os.Getenv("LOG_PRETTY") != "",
	}
	return cfg
}

func (c Config) RaceDuration() time.Duration {
	return time.Duration(c.RaceDurationMs) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
