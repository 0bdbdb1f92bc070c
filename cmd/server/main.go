package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/St1cky1/employee-tracker/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dev        bool
}

func configureLogger(logLevel, format string, useDev bool) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if useDev || strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// loadRuntime читает конфиг и настраивает логгер
func loadRuntime(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := configureLogger(cfg.Log.Level, cfg.Log.Format, opts.dev)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "server",
		Short: "Employee and task tracking API",
		Long: `Employee tracker serves the task and employee REST API backed by PostgreSQL.

CONFIGURATION:
  Defaults < TOML file (--config) < .env < environment variables.
  See DB_*, HTTP_PORT, GRPC_PORT, RABBITMQ_*, AUDIT_ENABLED, LOG_LEVEL.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to TOML config file")
	root.PersistentFlags().BoolVar(&opts.dev, "dev", false, "use text log format (default is JSON)")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newMigrateCommand(opts))
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
