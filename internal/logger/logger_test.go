package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(level string) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(&Config{Level: level, Format: "json", Output: buf}), buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "default config", config: nil},
		{name: "json", config: &Config{Level: "debug", Format: "json", Output: io.Discard}},
		{name: "console", config: &Config{Level: "info", Format: "console", Output: io.Discard}},
		{name: "nil output", config: &Config{Level: "info", TimeFormat: "unixms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.config))
		})
	}
}

func TestNew_LeavesTimeFormatUntilSetGlobal(t *testing.T) {
	prevFormat, prevGlobal := zerolog.TimeFieldFormat, L()
	t.Cleanup(func() {
		zerolog.TimeFieldFormat = prevFormat
		SetGlobal(prevGlobal)
	})
	zerolog.TimeFieldFormat = time.RFC3339

	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", TimeFormat: "unixms", Output: buf})
	assert.Equal(t, time.RFC3339, zerolog.TimeFieldFormat)

	log.Info("before")
	assert.IsType(t, "", decode(t, buf)["time"])

	SetGlobal(log)
	assert.Equal(t, zerolog.TimeFormatUnixMs, zerolog.TimeFieldFormat)

	buf.Reset()
	log.Info("after")
	assert.IsType(t, float64(0), decode(t, buf)["time"])

	SetGlobal(Nop())
	assert.Equal(t, zerolog.TimeFormatUnixMs, zerolog.TimeFieldFormat)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	log, buf := jsonLogger("info")
	log.Info("generated artifacts")

	entry := decode(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "generated artifacts", entry["message"])
	assert.NotEmpty(t, entry["time"])
	assert.NotEmpty(t, entry["caller"])
}

func TestLogger_ChildFields(t *testing.T) {
	log, buf := jsonLogger("info")
	log.With().Str("table", "user").Int("columns", 3).Logger().Info("model generated")

	entry := decode(t, buf)
	assert.Equal(t, "user", entry["table"])
	assert.Equal(t, float64(3), entry["columns"])
}

func TestLogger_WithFields(t *testing.T) {
	tests := []struct {
		name      string
		log       func(*Logger)
		wantLevel string
		wantErr   interface{}
	}{
		{
			name:      "info",
			log:       func(l *Logger) { l.InfoWith("generation finished", Fields{"table": "user"}) },
			wantLevel: "info",
		},
		{
			name: "warn with error",
			log: func(l *Logger) {
				l.WarnWith("artifact failed", errors.New("template Controller not found"), Fields{"table": "user"})
			},
			wantLevel: "warn",
			wantErr:   "template Controller not found",
		},
		{
			name:      "error without fields",
			log:       func(l *Logger) { l.ErrorWith("persist artifacts", errors.New("disk full"), nil) },
			wantLevel: "error",
			wantErr:   "disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := jsonLogger("debug")
			tt.log(log)

			entry := decode(t, buf)
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantErr, entry["error"])
		})
	}
}

func TestFromContext(t *testing.T) {
	log, buf := jsonLogger("info")
	FromContext(log.WithContext(context.Background())).Info("from context")
	assert.Equal(t, "from context", decode(t, buf)["message"])

	assert.Same(t, L(), FromContext(context.Background()))
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		emit  func(*Logger)
		want  bool
	}{
		{"debug logs debug", "debug", func(l *Logger) { l.Debugf("rendered %s", "DTO") }, true},
		{"info skips debug", "info", func(l *Logger) { l.Debug("skipped") }, false},
		{"warn logs warn", "warn", func(l *Logger) { l.Warn("careful") }, true},
		{"error skips info", "error", func(l *Logger) { l.Infof("listening on %s", ":8080") }, false},
		{"error logs error", "error", func(l *Logger) { l.Error("failed") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := jsonLogger(tt.level)
			tt.emit(log)
			assert.Equal(t, tt.want, buf.Len() > 0)
		})
	}
}

func TestLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbscaffold.log")
	log := New(&Config{Level: "info", Format: "json", Output: io.Discard, File: path, MaxSizeMB: 1})

	log.Info("rotated")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"rotated"`)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().ErrorWith("discarded", errors.New("x"), Fields{"k": 1})
	})
}

func BenchmarkLogger_InfoWith(b *testing.B) {
	log := New(&Config{Level: "info", Format: "json", Output: io.Discard})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.InfoWith("artifact written", Fields{"table": "user", "artifact": i})
	}
}
