package observability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beztern/launchpad/internal/platform/logging"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/httpx"
)

func TestRequestLoggerRecordsStatusAndBytes(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger, err := logging.NewWithWriter(&logs, "info", "json")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), httpx.RequestID(), RequestLogger(logger))

	req := httptest.NewRequest(http.MethodGet, "/api/countdown", nil)
	req.Header.Set(httpx.RequestIDHeader, "req-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(logs.Bytes()), &entry); err != nil {
		t.Fatalf("decode log entry %q: %v", logs.String(), err)
	}
	if entry["msg"] != "http request" {
		t.Fatalf("msg = %v", entry["msg"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Fatalf("status = %v, want %d", entry["status"], http.StatusTeapot)
	}
	if entry["bytes"] != float64(len("short and stout")) {
		t.Fatalf("bytes = %v", entry["bytes"])
	}
	if entry["path"] != "/api/countdown" || entry["request_id"] != "req-7" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestRequestLoggerDefaultsToOK(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger, err := logging.NewWithWriter(&logs, "info", "json")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/up", nil))
	if !strings.Contains(logs.String(), `"status":200`) {
		t.Fatalf("logs = %q, want status 200", logs.String())
	}
}

func TestStatusRecorderHijackUnsupported(t *testing.T) {
	t.Parallel()

	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	if _, _, err := rec.Hijack(); err == nil {
		t.Fatal("expected hijack error for recorder")
	}
}
