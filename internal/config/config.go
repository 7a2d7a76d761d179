package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServerConfig is read by cmd/server at startup
type ServerConfig struct {
	HTTPAddr        string        `env:"MIDNIGHT_HTTP_ADDR"         envDefault:":8080"`
	RedisAddr       string        `env:"MIDNIGHT_REDIS_ADDR"        envDefault:"localhost:6379"`
	RedisPassword   string        `env:"MIDNIGHT_REDIS_PASSWORD"`
	RedisDB         int           `env:"MIDNIGHT_REDIS_DB"          envDefault:"0"`
	EnforceGM       bool          `env:"MIDNIGHT_ENFORCE_GM"        envDefault:"false"`
	MaxDice         int           `env:"MIDNIGHT_MAX_DICE"          envDefault:"100"`
	SendBuffer      int           `env:"MIDNIGHT_SEND_BUFFER"       envDefault:"64"`
	LogLevel        string        `env:"MIDNIGHT_LOG_LEVEL"         envDefault:"info"`
	ShutdownTimeout time.Duration `env:"MIDNIGHT_SHUTDOWN_TIMEOUT"  envDefault:"10s"`
}

// RollerConfig is read by the terminal client
type RollerConfig struct {
	ServerURL  string `env:"ROLLER_SERVER_URL" envDefault:"ws://localhost:8080/ws"`
	CampaignID string `env:"ROLLER_CAMPAIGN"`
	UserID     string `env:"ROLLER_USER"`
	Name       string `env:"ROLLER_NAME"`
	IsGM       bool   `env:"ROLLER_GM"         envDefault:"false"`
	LogLevel   string `env:"ROLLER_LOG_LEVEL"  envDefault:"warn"`
}

// LoadDotEnv loads the given files into the process environment, skipping
// any that do not exist. Variables already set are never overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// LoadServer parses the server configuration. A nil environment reads the process environment.
func LoadServer(environment map[string]string) (*ServerConfig, error) {
	var cfg ServerConfig
	if err := parse(&cfg, environment); err != nil {
		return nil, err
	}
	if cfg.MaxDice < 1 {
		return nil, fmt.Errorf("MIDNIGHT_MAX_DICE must be positive, got %d", cfg.MaxDice)
	}
	if cfg.SendBuffer < 1 {
		return nil, fmt.Errorf("MIDNIGHT_SEND_BUFFER must be positive, got %d", cfg.SendBuffer)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadRoller parses the terminal client configuration
func LoadRoller(environment map[string]string) (*RollerConfig, error) {
	var cfg RollerConfig
	if err := parse(&cfg, environment); err != nil {
		return nil, err
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parse(target any, environment map[string]string) error {
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// NewLogger builds a text logger at the given level
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
