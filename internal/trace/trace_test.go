package trace

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// recordHandler records log records for inspection.
type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
	level   slog.Level
}

func newRecordHandler(level slog.Level) *recordHandler {
	return &recordHandler{level: level}
}

func (h *recordHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	// Clone to avoid retaining internal buffers slog may reuse.
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *recordHandler) Records() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]slog.Record, len(h.records))
	copy(out, h.records)
	return out
}

func TestNilLoggerIsSafeEverywhere(t *testing.T) {
	ctx := context.Background()
	if Enabled(ctx, nil, slog.LevelDebug) {
		t.Error("Enabled should return false for nil logger")
	}
	Debug(ctx, nil, "msg")
	Info(ctx, nil, "msg")
	Warn(ctx, nil, "msg")
	Error(ctx, nil, "msg")
	DebugLazy(ctx, nil, "msg", func() []slog.Attr { t.Fatal("lazy fn must not run"); return nil })
	op := Begin(ctx, nil, "synthgen.test.op")
	op.End(nil)
}

func TestDebug_RespectsLevel(t *testing.T) {
	ctx := context.Background()
	h := newRecordHandler(slog.LevelInfo)
	logger := slog.New(h)

	Debug(ctx, logger, "below threshold")
	if got := len(h.Records()); got != 0 {
		t.Fatalf("disabled-level Debug logged %d records; want 0", got)
	}

	Info(ctx, logger, "at threshold", slog.String("k", "v"))
	records := h.Records()
	if len(records) != 1 {
		t.Fatalf("Info logged %d records; want 1", len(records))
	}
	if records[0].Message != "at threshold" {
		t.Errorf("message = %q", records[0].Message)
	}
}

func TestLazy_SkipsAttrConstructionWhenDisabled(t *testing.T) {
	ctx := context.Background()
	h := newRecordHandler(slog.LevelWarn)
	logger := slog.New(h)

	called := false
	DebugLazy(ctx, logger, "skipped", func() []slog.Attr {
		called = true
		return nil
	})
	if called {
		t.Error("lazy attr fn ran while the level was disabled")
	}

	WarnLazy(ctx, logger, "emitted", func() []slog.Attr {
		called = true
		return []slog.Attr{slog.Int("n", 1)}
	})
	if !called {
		t.Error("lazy attr fn should run when the level is enabled")
	}
	if got := len(h.Records()); got != 1 {
		t.Errorf("logged %d records; want 1", got)
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	id, ok := RequestIDFrom(ctx)
	if !ok || id != "req-123" {
		t.Errorf("RequestIDFrom = %q, %v; want \"req-123\", true", id, ok)
	}
	if _, ok := RequestIDFrom(context.Background()); ok {
		t.Error("RequestIDFrom on a bare context should report absent")
	}
}

func TestOp_LogsStartAndEndWithDuration(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-7")
	h := newRecordHandler(slog.LevelDebug)
	logger := slog.New(h)

	op := Begin(ctx, logger, "synthgen.test.op", slog.String("at", "users"))
	op.End(nil, slog.Int("records", 3))
	op.End(nil) // second End is a no-op

	records := h.Records()
	if len(records) != 2 {
		t.Fatalf("logged %d records; want start + end", len(records))
	}
	assertAttr(t, records[0], "op", "synthgen.test.op")
	assertAttr(t, records[0], "request_id", "req-7")
	assertAttr(t, records[1], "op", "synthgen.test.op")
	hasElapsed := false
	records[1].Attrs(func(a slog.Attr) bool {
		if a.Key == "elapsed_ms" {
			hasElapsed = true
		}
		return true
	})
	if !hasElapsed {
		t.Error("end record is missing elapsed_ms")
	}
}

func assertAttr(t *testing.T, r slog.Record, key, want string) {
	t.Helper()
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found = true
			if a.Value.String() != want {
				t.Errorf("attr %q = %q; want %q", key, a.Value.String(), want)
			}
		}
		return true
	})
	if !found {
		t.Errorf("attr %q missing", key)
	}
}
