package debug

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestLogMemStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logMemStats(logger, 42)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	if rec["msg"] != "memstats" || rec["rss"] != float64(42) {
		t.Fatalf("unexpected record %v", rec)
	}
	if _, ok := rec["heap_alloc"]; !ok {
		t.Fatalf("heap_alloc missing: %v", rec)
	}
}

func TestLogGoroutines(t *testing.T) {
	var buf bytes.Buffer
	logGoroutines(slog.New(slog.NewJSONHandler(&buf, nil)))
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	if n, _ := rec["goroutines"].(float64); n < 1 {
		t.Fatalf("expected a positive goroutine count, got %v", rec["goroutines"])
	}
}

func TestEvery_StopsAndIsIdempotent(t *testing.T) {
	ticks := make(chan struct{}, 16)
	stop := every(time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatalf("ticker never fired")
	}
	stop()
	stop()
}
