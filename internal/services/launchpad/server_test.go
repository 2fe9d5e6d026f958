package launchpad

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beztern/launchpad/internal/countdown"
	"github.com/beztern/launchpad/internal/platform/clock"
	platformgrpc "github.com/beztern/launchpad/internal/platform/grpc"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/httpx"
)

var epoch = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) Config {
	t.Helper()
	fake := clock.NewFake(epoch)
	return Config{
		HTTPAddr:  "127.0.0.1:0",
		Target:    epoch.Add(90061001 * time.Millisecond),
		DBPath:    filepath.Join(t.TempDir(), "launchpad.db"),
		Clock:     fake,
		Scheduler: fake,
	}
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	server, err := NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(server.Close)
	return server
}

func TestNewServerRequiresHTTPAddr(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.HTTPAddr = "  "
	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Fatal("expected error for empty http address")
	}
}

func TestNewServerRejectsZeroTarget(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Target = time.Time{}
	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Fatal("expected error for zero target")
	}
}

func TestRootHandlerRoutes(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, testConfig(t))
	server.Engine().Tick()
	handler := server.httpServer.Handler

	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantContent string
		wantBody    string
	}{
		{name: "landing", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantContent: "text/html", wantBody: "id=\"countdown\""},
		{name: "fragment", method: http.MethodGet, path: "/countdown", wantStatus: http.StatusOK, wantContent: "text/html", wantBody: "countdown-units"},
		{name: "api", method: http.MethodGet, path: "/api/countdown", wantStatus: http.StatusOK, wantContent: "application/json", wantBody: "\"total_seconds\":90061"},
		{name: "health", method: http.MethodGet, path: "/up", wantStatus: http.StatusOK, wantContent: "text/plain", wantBody: "ok"},
		{name: "stylesheet", method: http.MethodGet, path: "/static/css/launchpad.css", wantStatus: http.StatusOK, wantContent: "text/css", wantBody: ".countdown"},
		{name: "script", method: http.MethodGet, path: "/static/js/countdown.js", wantStatus: http.StatusOK, wantBody: "WebSocket"},
		{name: "not found", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound, wantContent: "text/html", wantBody: "Page not found"},
		{name: "notify get", method: http.MethodGet, path: "/notify", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d", tc.name, rr.Code, tc.wantStatus)
		}
		if tc.wantContent != "" && !strings.HasPrefix(rr.Header().Get("Content-Type"), tc.wantContent) {
			t.Fatalf("%s: Content-Type = %q, want %q", tc.name, rr.Header().Get("Content-Type"), tc.wantContent)
		}
		if tc.wantBody != "" && !strings.Contains(rr.Body.String(), tc.wantBody) {
			t.Fatalf("%s: body missing %q", tc.name, tc.wantBody)
		}
		if rr.Header().Get(httpx.RequestIDHeader) == "" {
			t.Fatalf("%s: missing %s header", tc.name, httpx.RequestIDHeader)
		}
	}
}

func TestNotifyPersistsThroughServer(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	server := newTestServer(t, cfg)
	req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(`{"email":"fan@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	rr := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		server.httpServer.Handler.ServeHTTP(rr, req)
	}()
	fake := cfg.Clock.(*clock.Fake)
	deadline := time.Now().Add(2 * time.Second)
	for fake.Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("sign-up never waited on the scheduler")
		}
		time.Sleep(time.Millisecond)
	}
	fake.Advance(1500 * time.Millisecond)
	<-done

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "success" {
		t.Fatalf("status = %v, want success", resp["status"])
	}
}

func TestEngineCompletesOnFakeClock(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Target = epoch.Add(2 * time.Second)
	server := newTestServer(t, cfg)
	if err := server.Engine().Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cfg.Clock.(*clock.Fake).Advance(3 * time.Second)
	if got := server.Engine().Snapshot().Status; got != countdown.StatusComplete {
		t.Fatalf("status = %q, want %q", got, countdown.StatusComplete)
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()
	return addr
}

func TestListenAndServeServesHealthAndStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Clock = nil
	cfg.Scheduler = nil
	cfg.HTTPAddr = freeAddr(t)
	cfg.GRPCAddr = freeAddr(t)
	server := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe(ctx)
	}()

	conn, err := platformgrpc.Dial(cfg.GRPCAddr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	if err := platformgrpc.WaitForHealth(waitCtx, conn, ServiceName, nil); err != nil {
		t.Fatalf("WaitForHealth() error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get("http://" + cfg.HTTPAddr + "/up")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("GET /up status = %d, want %d", resp.StatusCode, http.StatusOK)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("GET /up error = %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not stop after cancel")
	}
}

func TestListenAndServeRequiresContext(t *testing.T) {
	t.Parallel()

	var nilServer *Server
	if err := nilServer.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
	server := newTestServer(t, testConfig(t))
	if err := server.ListenAndServe(nil); err == nil {
		t.Fatal("expected error for nil context")
	}
}
