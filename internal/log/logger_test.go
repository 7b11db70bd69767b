package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer, component string) *Logger {
	return New(Config{
		Component: component,
		Handler:   slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, ComponentTracker)

	logger.Info("hello")

	out := buf.String()
	if !strings.Contains(out, "component=tracker") {
		t.Fatalf("expected component tag in output: %s", out)
	}
	if logger.Component() != ComponentTracker {
		t.Fatalf("Component() = %q", logger.Component())
	}
}

func TestWithComponentRebinds(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, ComponentApp).WithComponent(ComponentWorker)

	logger.Warn("careful")

	if !strings.Contains(buf.String(), "component=worker") {
		t.Fatalf("expected rebound component in output: %s", buf.String())
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Fatal("expected a logger")
	}

	var buf bytes.Buffer
	want := newBufferLogger(&buf, ComponentHTTP)
	ctx := context.WithValue(context.Background(), LoggerContextKey, want)
	if got := FromContext(ctx); got != want {
		t.Fatal("expected the context logger back")
	}
}

func TestMiddlewareInjectsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, ComponentHTTP)

	var seen *Logger
	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if seen != logger {
		t.Fatal("expected the middleware logger in the request context")
	}
}

func TestStructuredLoggerHTTPLifecycle(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, ComponentHTTP))

	req := httptest.NewRequest(http.MethodPost, "/api/income", nil)
	ctx := context.Background()

	sl.LogHTTPStart(ctx, req, "10.0.0.1", "req_abc")
	sl.LogHTTPEnd(ctx, req, http.StatusConflict, 12, "10.0.0.1", "req_abc")

	out := buf.String()
	for _, want := range []string{
		"HTTP request started",
		"HTTP request completed",
		"method=POST",
		"path=/api/income",
		"client_ip=10.0.0.1",
		"request_id=req_abc",
		"status_code=409",
		"duration_ms=12",
		"success=false",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
	// 4xx completions log at warn level.
	if !strings.Contains(out, "level=WARN") {
		t.Fatalf("expected WARN completion for 409: %s", out)
	}
}

func TestStructuredLoggerTransactionAndError(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, ComponentTracker))
	ctx := context.Background()

	sl.LogTransactionRecorded(ctx, "expense", "t1", 12.5)
	sl.LogError(ctx, "export failed", errors.New("boom"), ComponentWorker, OpSync,
		NewFields().WithTransaction("expense", "t1", 12.5))

	out := buf.String()
	for _, want := range []string{
		"Transaction recorded",
		"kind=expense",
		"transaction_id=t1",
		"amount=12.5",
		"operation=create",
		"export failed",
		"error=boom",
		"operation=sync",
		"component=worker",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
}
