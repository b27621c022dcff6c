package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	min      slog.Level
	messages []string
}

func (c *captureSink) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.min
}

func (c *captureSink) Handle(_ context.Context, record slog.Record) error {
	c.messages = append(c.messages, record.Message)
	return nil
}

func (c *captureSink) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *captureSink) WithGroup(string) slog.Handler      { return c }

func TestFanoutRespectsSinkLevels(t *testing.T) {
	everything := &captureSink{min: slog.LevelInfo}
	errorsOnly := &captureSink{min: slog.LevelError}
	fanout := NewFanout(everything, errorsOnly)

	ctx := context.Background()
	assert.True(t, fanout.Enabled(ctx, slog.LevelInfo))
	assert.True(t, fanout.Enabled(ctx, slog.LevelError))

	info := slog.NewRecord(time.Now(), slog.LevelInfo, "routine", 0)
	require.NoError(t, fanout.Handle(ctx, info))
	failure := slog.NewRecord(time.Now(), slog.LevelError, "broken", 0)
	require.NoError(t, fanout.Handle(ctx, failure))

	assert.Equal(t, []string{"routine", "broken"}, everything.messages)
	assert.Equal(t, []string{"broken"}, errorsOnly.messages)
}

func TestLevelFromEnv(t *testing.T) {
	for env, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"junk":  slog.LevelInfo,
	} {
		t.Setenv("LOG_LEVEL", env)
		assert.Equal(t, want, levelFromEnv())
	}
}
