package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votingsystem/internal/app"
	"votingsystem/internal/config"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "votingsystem"}
	flags := cmd.Flags()
	flags.Bool("monitor", false, "")
	flags.String("addr", "", "")
	flags.String("log-level", "", "")
	flags.String("log-format", "", "")
	flags.StringArray("candidate", nil, "")
	require.NoError(t, flags.Parse(args))
	return cmd
}

func TestApplyFlagsOverridesConfig(t *testing.T) {
	cfg := &config.Config{
		Monitor: config.MonitorConfig{Host: "127.0.0.1", Port: "8080"},
		Ballot:  config.BallotConfig{SeedCandidates: []string{"Alice"}},
		Logging: config.LoggingConfig{Level: "warn", Format: "pretty"},
	}
	cmd := newTestCommand(t,
		"--monitor",
		"--addr", "0.0.0.0:9090",
		"--log-level", "debug",
		"--log-format", "json",
		"--candidate", "Bob",
		"--candidate", "Cara Lee",
	)

	require.NoError(t, applyFlags(cfg, cmd))
	assert.True(t, cfg.Monitor.Enabled)
	assert.Equal(t, "0.0.0.0:9090", cfg.GetAddr())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"Alice", "Bob", "Cara Lee"}, cfg.Ballot.SeedCandidates)
}

func TestApplyFlagsKeepsConfigWhenUnset(t *testing.T) {
	cfg := &config.Config{
		Monitor: config.MonitorConfig{Enabled: true, Host: "localhost", Port: "8081"},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}

	require.NoError(t, applyFlags(cfg, newTestCommand(t)))
	assert.True(t, cfg.Monitor.Enabled)
	assert.Equal(t, "localhost:8081", cfg.GetAddr())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestApplyFlagsRejectsBadAddr(t *testing.T) {
	cfg := &config.Config{}
	err := applyFlags(cfg, newTestCommand(t, "--addr", "no-port"))
	assert.Error(t, err)
}

func TestSeedCandidatesSkipsRejectedNames(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := app.NewLedgerSession(logger)
	defer session.Close()

	seedCandidates(session, []string{"Alice", "  ", "Alice", "Bob"}, logger)
	assert.Equal(t, []string{"Alice", "Bob"}, session.ListCandidateNames())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestPtermLogLevel(t *testing.T) {
	assert.Equal(t, pterm.LogLevelDebug, ptermLogLevel(slog.LevelDebug))
	assert.Equal(t, pterm.LogLevelInfo, ptermLogLevel(slog.LevelInfo))
	assert.Equal(t, pterm.LogLevelWarn, ptermLogLevel(slog.LevelWarn))
	assert.Equal(t, pterm.LogLevelError, ptermLogLevel(slog.LevelError))
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		t.Run(format, func(t *testing.T) {
			logger := newLogger(config.LoggingConfig{Level: "error", Format: format})
			assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
			assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
		})
	}
}
