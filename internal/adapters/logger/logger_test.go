package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bagel/internal/adapters/logger"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      domain.LogLevel
		goldenName string
	}{
		{name: "info drops debug", level: domain.LogLevelInfo, goldenName: "levels_info"},
		{name: "debug keeps everything", level: domain.LogLevelDebug, goldenName: "levels_debug"},
		{name: "warn drops info", level: domain.LogLevelWarn, goldenName: "levels_warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.SetLevel(tt.level)

			lg.Debug("beforeJob. Name: Hero")
			lg.Info("listening on :3030")
			lg.Warn(`Can't stop stopwatch "batch" because it's already stopped.`)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			goldenName: "error_plain",
		},
		{
			name:       "wrapped chain",
			err:        zerr.Wrap(zerr.Wrap(errors.New("no such file"), "failed to read module source"), "failed to load Hero"),
			goldenName: "error_chain",
		},
		{
			name:       "multiline cause",
			err:        zerr.Wrap(errors.New("Caught error:\nJob Id: 1"), "request failed"),
			goldenName: "error_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "hello", record["msg"])
}

func TestCollectMessages(t *testing.T) {
	err := zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer")
	assert.Equal(t, []string{"outer layer", "middle layer", "root cause"}, logger.CollectMessages(err))
	assert.Equal(t, []string{"plain"}, logger.CollectMessages(errors.New("plain")))
}

func TestCollectMessages_SkipsEmpty(t *testing.T) {
	sentinel := zerr.New("configuration file not found")
	err := zerr.Wrap(zerr.With(zerr.Wrap(sentinel, ""), "cwd", "/srv"), "failed to load configuration")
	assert.Equal(t, []string{"failed to load configuration", "configuration file not found"}, logger.CollectMessages(err))
}
