// Package config reads the bot configuration from the environment and the command line.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Parse reads the configuration from the environment. Flags in args override the environment.
func Parse(l *slog.Logger, args []string) (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the JSON documents")
	fs.StringVar(&cfg.MonitoringPort, "monitoring-port", cfg.MonitoringPort, "Port for the monitoring server")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if cfg.UseMongo() {
		l.Debug("Found MongoDB URI in environment, using the mongo backend", slog.String("key", EnvMongoUri))
	} else {
		l.Debug("No MongoDB URI provided, using the file backend", slog.String(EnvDataDir, cfg.DataDir))
	}

	return cfg, nil
}
