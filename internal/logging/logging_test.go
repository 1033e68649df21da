package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerInitialized(t *testing.T) {
	require.NotNil(t, GetLogger(), "Logger should be initialized")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"info level", "info", slog.LevelInfo},
		{"warn level", "warn", slog.LevelWarn},
		{"warning level", "warning", slog.LevelWarn},
		{"error level", "error", slog.LevelError},
		{"default for unknown", "invalid", slog.LevelInfo},
		{"uppercase", "DEBUG", slog.LevelDebug},
		{"mixed case", "InFo", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestInitLoggerHonoursLevel(t *testing.T) {
	t.Cleanup(func() { InitLogger("info", os.Stderr) })

	var buf bytes.Buffer
	l := InitLogger("warn", &buf)
	require.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, l.Enabled(context.Background(), slog.LevelWarn))

	slog.Warn("photo rejected", "child", 2)
	require.Contains(t, buf.String(), "photo rejected")
	require.Contains(t, buf.String(), "child=2")
}

func TestOpenFile(t *testing.T) {
	t.Cleanup(func() { InitLogger("info", os.Stderr) })

	path := filepath.Join(t.TempDir(), "account.log")
	c, err := OpenFile("debug", path)
	require.NoError(t, err)
	slog.Debug("written to file")
	require.NoError(t, c.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "written to file")

	_, err = OpenFile("info", filepath.Join(t.TempDir(), "missing", "x.log"))
	require.Error(t, err)
}
