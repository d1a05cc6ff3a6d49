package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spcflow/spcflow/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	logger.Info("queue connected", "type", "memory")

	out := buf.String()
	if !strings.Contains(out, `"message":"queue connected"`) {
		t.Errorf("Expected message in output, got %s", out)
	}
	if !strings.Contains(out, `"type":"memory"`) {
		t.Errorf("Expected key-value field in output, got %s", out)
	}

	buf.Reset()
	logger.Debug("below threshold")
	if buf.Len() != 0 {
		t.Errorf("Expected debug suppressed at info level, got %s", buf.String())
	}
}

func TestNewFromConfig_Defaults(t *testing.T) {
	logger, err := NewFromConfig(config.LoggingConfig{
		Level:  "debug",
		Format: "json",
	})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if logger == nil {
		t.Fatal("Expected a logger")
	}
}

func TestNewFromConfig_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewFromConfig(config.LoggingConfig{
		Level: "shouting",
	})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if logger.zl.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level fallback, got %v", logger.zl.GetLevel())
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)

	ctx := WithLogger(context.Background(), logger)
	got := FromContext(ctx)
	if got != logger {
		t.Error("Expected the context-scoped logger back")
	}

	if FromContext(context.Background()) != global {
		t.Error("Expected fallback to the global logger")
	}
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)

	ctx := WithRequestID(context.Background(), "req-42")
	logger.WithContext(ctx).Info("cycle done")

	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Errorf("Expected request id in output, got %s", buf.String())
	}
}
