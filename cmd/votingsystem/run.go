package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"votingsystem/internal/app"
	"votingsystem/internal/config"
	"votingsystem/internal/console"
	httpTransport "votingsystem/internal/transport/http"
)

const shutdownTimeout = 5 * time.Second

func runVotingSystem(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")

	// Load configuration
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cfg, cmd); err != nil {
		return err
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("starting voting system",
		"env", cfg.Monitor.Env,
		"monitor", cfg.Monitor.Enabled,
	)

	session := app.NewLedgerSession(logger)
	defer session.Close()

	seedCandidates(session, cfg.Ballot.SeedCandidates, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var server *httpTransport.Server
	if cfg.Monitor.Enabled {
		server = httpTransport.NewServer(cfg, session, logger)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("monitor error", "error", err)
				stop()
			}
		}()
		pterm.Info.WithWriter(os.Stderr).Println("Results monitor on http://" + cfg.GetAddr())
	}

	shell := console.NewShell(session, os.Stdin, os.Stdout, logger)
	shellDone := make(chan error, 1)
	go func() {
		shellDone <- shell.Run(ctx)
	}()

	// A blocked stdin read cannot be interrupted, so a signal wins the race
	select {
	case err = <-shellDone:
	case <-ctx.Done():
		logger.Info("interrupted")
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("monitor forced to shutdown", "error", err)
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// applyFlags overrides configuration with flags set on the command line
func applyFlags(cfg *config.Config, cmd *cobra.Command) error {
	flags := cmd.Flags()

	if flags.Changed("monitor") {
		cfg.Monitor.Enabled, _ = flags.GetBool("monitor")
	}
	if flags.Changed("addr") {
		addr, _ := flags.GetString("addr")
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return fmt.Errorf("invalid --addr %q: %w", addr, err)
		}
		cfg.Monitor.Host = host
		cfg.Monitor.Port = port
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("candidate") {
		candidates, _ := flags.GetStringArray("candidate")
		cfg.Ballot.SeedCandidates = append(cfg.Ballot.SeedCandidates, candidates...)
	}
	return nil
}

// seedCandidates registers configured candidates. Rejected names are logged
// and skipped so a bad entry does not keep the menu from starting.
func seedCandidates(session *app.LedgerSession, names []string, logger *slog.Logger) {
	for _, name := range names {
		if err := session.RegisterCandidate(name); err != nil {
			logger.Warn("skipping seed candidate", "candidate", name, "error", err)
		}
	}
}

// newLogger builds the process logger. Logs go to stderr so they never
// interleave with the menu on stdout.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := parseLogLevel(cfg.Level)

	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	default:
		ptermLogger := pterm.DefaultLogger.
			WithLevel(ptermLogLevel(level)).
			WithWriter(os.Stderr)
		return slog.New(pterm.NewSlogHandler(ptermLogger))
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func ptermLogLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case level <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case level <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
