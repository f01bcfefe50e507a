package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

const (
	// KeyError is the key used for errors in log records.
	KeyError = "err"

	// KeyDal is the key used to tag records from a data access layer.
	KeyDal = "dal"

	// KeyApp is the key used for the application name.
	KeyApp = "app"

	// KeyGuildID is the key used for a guild ID.
	KeyGuildID = "guild_id"

	// KeyUserID is the key used for a user ID.
	KeyUserID = "user_id"

	// KeyChannelID is the key used for a channel ID.
	KeyChannelID = "channel_id"
)

// Name is the name of the application the logger is created for.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// appName is the name of the application.
	appName string

	// Level is the minimum level that will be logged.
	Level slog.Level

	// Output is where records are written. Defaults to stdout.
	Output io.Writer
}

// NewConfig creates a new logger configuration for the given application.
func NewConfig(name Name) *Config {
	return &Config{
		appName: string(name),
		Level:   slog.LevelInfo,
		Output:  os.Stdout,
	}
}

// CommonLogger creates the JSON logger used across the application and sets it as the default.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, errors.New("logger config is nil")
	} else if c.appName == "" {
		return nil, errors.New("application name is required")
	}

	out := c.Output
	if out == nil {
		out = os.Stdout
	}

	l := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		AddSource: true,
		Level:     c.Level,
	})).With(slog.String(KeyApp, c.appName))

	slog.SetDefault(l)
	return l, nil
}
