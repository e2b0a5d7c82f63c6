package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drakeaxelrod/yxa/hid"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestLevelFilterSplitsStreams(t *testing.T) {
	var lo, hi bytes.Buffer
	handler := MultiHandler{hs: []slog.Handler{
		LevelFilter{
			pass: func(l slog.Level) bool { return l < slog.LevelError },
			h:    slog.NewTextHandler(&lo, &slog.HandlerOptions{Level: slog.LevelDebug}),
		},
		LevelFilter{
			pass: func(l slog.Level) bool { return l >= slog.LevelError },
			h:    slog.NewTextHandler(&hi, &slog.HandlerOptions{Level: slog.LevelDebug}),
		},
	}}
	logger := slog.New(handler)

	logger.Info("normal")
	logger.Error("broken")

	assert.Contains(t, lo.String(), "normal")
	assert.NotContains(t, lo.String(), "broken")
	assert.Contains(t, hi.String(), "broken")
	assert.NotContains(t, hi.String(), "normal")
}

func TestMultiHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer
	h := MultiHandler{hs: []slog.Handler{
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	ctx := context.Background()
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
}

func TestRawLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	raw := NewRaw(&buf)

	raw.Log(false, hid.LayerFrame(2).Bytes())
	raw.Log(true, hid.RequestStateFrame().Bytes())

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "D->H LayerState frame: 32 bytes")
	assert.Contains(t, out, "H->D RequestState frame: 32 bytes")
	assert.Contains(t, out, "hex: 01 02 00")
}

func TestRawLoggerNilWriterNoop(t *testing.T) {
	raw := NewRaw(nil)
	// Must not panic.
	raw.Log(false, hid.HeartbeatFrame().Bytes())
	raw.Log(true, nil)
}
