// Package module defines the feature contract used by launchpad composition.
package module

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/beztern/launchpad/internal/countdown"
	"github.com/beztern/launchpad/internal/platform/clock"
	"github.com/beztern/launchpad/internal/services/launchpad/content"
	"github.com/beztern/launchpad/internal/services/launchpad/storage"
	"github.com/beztern/launchpad/internal/services/launchpad/stream"
)

// CountdownReader exposes the engine read model.
type CountdownReader interface {
	Snapshot() countdown.Snapshot
}

// Dependencies carries shared services handed to every module.
type Dependencies struct {
	Countdown     CountdownReader
	Stream        *stream.Hub
	Site          content.Site
	Subscriptions storage.SubscriptionStore
	Clock         clock.Clock
	Scheduler     clock.Scheduler
	Logger        *zap.Logger

	// SubmitDelay is the simulated processing time of a sign-up.
	SubmitDelay time.Duration
	// StatusResetAfter tells the form when to return to idle.
	StatusResetAfter time.Duration
}

// Mount describes the paths a module owns. A path ending in "/" owns its
// subtree, any other path is matched exactly.
type Mount struct {
	Paths   []string
	Handler http.Handler
}

// Module declares the minimum contract required by launchpad composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
