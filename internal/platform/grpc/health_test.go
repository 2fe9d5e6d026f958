package grpc

import (
	"context"
	"net"
	"testing"
	"time"
)

func startHealthServer(t *testing.T, services ...string) (string, *HealthServer) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	hs := NewHealthServer(services...)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- hs.Server.Serve(listener)
	}()
	t.Cleanup(func() {
		hs.Stop()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
		}
	})
	return listener.Addr().String(), hs
}

func TestWaitForHealthServing(t *testing.T) {
	addr, _ := startHealthServer(t, "launchpad")

	conn, err := Dial(addr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "launchpad", nil); err != nil {
		t.Fatalf("wait for health: %v", err)
	}
}

func TestWaitForHealthTransitionsToServing(t *testing.T) {
	addr, hs := startHealthServer(t, "launchpad")
	hs.SetServing("launchpad", false)

	conn, err := Dial(addr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	go func() {
		time.Sleep(200 * time.Millisecond)
		hs.SetServing("launchpad", true)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "launchpad", nil); err != nil {
		t.Fatalf("wait for health after transition: %v", err)
	}
}

func TestWaitForHealthRespectsContext(t *testing.T) {
	addr, hs := startHealthServer(t, "launchpad")
	hs.SetServing("launchpad", false)

	conn, err := Dial(addr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "launchpad", nil); err == nil {
		t.Fatal("expected context error, got nil")
	}
}

func TestWaitForHealthRejectsNilConn(t *testing.T) {
	t.Parallel()

	if err := WaitForHealth(context.Background(), nil, "", nil); err == nil {
		t.Fatal("expected nil connection error")
	}
}

func TestDialRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := Dial("  "); err == nil {
		t.Fatal("expected address error")
	}
}
