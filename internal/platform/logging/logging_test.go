package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"readrise/internal/platform/logging"
)

func TestNewHonoursLevel(t *testing.T) {
	t.Parallel()
	logger, err := logging.New("warn", "json")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error must be enabled at warn level")
	}
	if logging.OrNop(nil) == nil {
		t.Fatalf("OrNop must never return nil")
	}
}
