package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	// KeyError is the key used for errors.
	KeyError = "err"

	// KeyApp is the key used for the application name.
	KeyApp = "app"

	// KeyGuild is the key used for guild IDs.
	KeyGuild = "guild_id"

	// KeyChannel is the key used for channel IDs and names.
	KeyChannel = "channel"

	// KeyUser is the key used for user IDs.
	KeyUser = "user_id"

	// KeyTicket is the key used for ticket names.
	KeyTicket = "ticket"

	// KeyTask is the key used for dispatched task IDs.
	KeyTask = "task_id"

	// EnvLogLevel is the environment variable for the log level.
	EnvLogLevel = `LOG_LEVEL`
)

// Name is the name of the application that the logger is for.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// Name is the application name attached to every record.
	Name string

	// Level is the minimum level that is written.
	Level slog.Level
}

// NewConfig creates a new logger configuration. The level is read from LOG_LEVEL and defaults to info.
func NewConfig(name Name) *Config {
	c := &Config{
		Name:  string(name),
		Level: slog.LevelInfo,
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		if err := c.Level.UnmarshalText([]byte(strings.ToUpper(lvl))); err != nil {
			// Keep the default, the logger does not exist yet.
			c.Level = slog.LevelInfo
		}
	}

	return c
}

// CommonLogger creates the JSON logger used across the application and sets it as the default.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, fmt.Errorf("logger config is nil")
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     c.Level,
	})

	l := slog.New(h).With(slog.String(KeyApp, c.Name))
	slog.SetDefault(l)
	return l, nil
}
