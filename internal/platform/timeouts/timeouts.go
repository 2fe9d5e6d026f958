// Package timeouts defines shared timeout constants used across launchpad
// processes so HTTP, gRPC, and CLI probes agree on their limits.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the launchpad gRPC health endpoint.
const GRPCDial = 2 * time.Second

// HealthProbe caps a single CLI health check attempt.
const HealthProbe = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// WebSocketWrite bounds a single countdown frame write to a browser peer.
const WebSocketWrite = 2 * time.Second
