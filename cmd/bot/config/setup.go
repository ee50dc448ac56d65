package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

var (
	// ErrMissingBotToken is returned when no bot token is configured.
	ErrMissingBotToken = errors.New("bot token not provided")

	// ErrInvalidValue is returned when a configured value cannot be used.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Parse reads the configuration from the command line arguments, the env file and the
// environment. Flags take precedence over the environment.
func Parse(l *slog.Logger, args []string) error {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	envFile := fs.String("env-file", DefaultEnvFile, "File to load environment variables from")
	adminPort := fs.String("admin-port", DefaultAdminPort, "Port for the admin server")
	monitoringPort := fs.String("monitoring-port", DefaultMonitoringPort, "Port for the monitoring server")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	if err := godotenv.Load(*envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error loading env file %s: %w", *envFile, err)
		}
		l.Debug("No env file found", slog.String("file", *envFile))
	}

	BotToken = os.Getenv(EnvBotToken)
	if BotToken == "" {
		return fmt.Errorf("%w: set %s", ErrMissingBotToken, EnvBotToken)
	}
	l.Debug("Found bot token in environment", slog.String("key", EnvBotToken))

	AdminPort = lookup(l, fs, "admin-port", *adminPort, EnvAdminPort)
	MonitoringPort = lookup(l, fs, "monitoring-port", *monitoringPort, EnvMonitoringPort)

	AdminSecret = os.Getenv(EnvAdminSecret)
	if AdminSecret == "" {
		l.Warn("No admin secret provided, admin sessions will not survive a restart", slog.String("key", EnvAdminSecret))
	}

	var err error
	DispatchQueueSize, err = intFromEnv(EnvDispatchQueueSize, DefaultDispatchQueueSize)
	if err != nil {
		return err
	} else if DispatchQueueSize <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidValue, EnvDispatchQueueSize)
	}

	PanelSubmissionsPerMinute, err = intFromEnv(EnvPanelSubmissionsPerMinute, 0)
	if err != nil {
		return err
	} else if PanelSubmissionsPerMinute < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, EnvPanelSubmissionsPerMinute)
	}

	l.Debug("Configuration loaded",
		slog.String("admin_port", AdminPort),
		slog.String("monitoring_port", MonitoringPort),
		slog.Int("dispatch_queue_size", DispatchQueueSize),
		slog.Int("panel_submissions_per_minute", PanelSubmissionsPerMinute),
	)
	return nil
}

// lookup returns the flag value when the flag was set, then the environment, then the flag default.
func lookup(l *slog.Logger, fs *pflag.FlagSet, flag, flagValue, env string) string {
	if fs.Changed(flag) {
		return flagValue
	}

	if v := os.Getenv(env); v != "" {
		l.Debug("Found value in environment", slog.String("key", env))
		return v
	}

	l.Info(fmt.Sprintf("No value provided for %s, defaulting to %s", env, flagValue), slog.String("key", env))
	return flagValue
}

func intFromEnv(env string, def int) (int, error) {
	v := os.Getenv(env)
	if v == "" {
		return def, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidValue, env, err)
	}
	return i, nil
}
