package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaults(t *testing.T) {
	Reset()
	if Ping() != DefaultPing || Short() != DefaultShort || Medium() != DefaultMedium || Long() != DefaultLong {
		t.Errorf("unexpected defaults: %+v", Current())
	}
}

func TestConfigure_IgnoresZero(t *testing.T) {
	defer Reset()

	Configure(Config{Short: 7 * time.Second})
	if Short() != 7*time.Second {
		t.Errorf("Short: got %v, want 7s", Short())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium changed unexpectedly: %v", Medium())
	}
}

func TestWithTimeout_LogsDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.New(core), "slow op")
	<-ctx.Done()
	cancel()

	if logs.Len() != 1 {
		t.Fatalf("expected 1 warning, got %d", logs.Len())
	}
	if logs.All()[0].ContextMap()["operation"] != "slow op" {
		t.Errorf("unexpected fields: %v", logs.All()[0].ContextMap())
	}
}

func TestWithTimeout_NoLogOnEarlyCancel(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	_, cancel := WithTimeout(context.Background(), time.Hour, zap.New(core), "fast op")
	cancel()

	if logs.Len() != 0 {
		t.Errorf("expected no warnings, got %d", logs.Len())
	}
}
