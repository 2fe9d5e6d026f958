// Package notify handles launch notification sign-ups from the landing page.
package notify

import (
	"errors"
	"net/http"

	"github.com/beztern/launchpad/internal/platform/clock"
	"github.com/beztern/launchpad/internal/platform/logging"
	module "github.com/beztern/launchpad/internal/services/launchpad/module"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/httpx"
	"github.com/beztern/launchpad/internal/services/launchpad/routepath"
)

// Module owns the sign-up route.
type Module struct{}

// New returns the notify module.
func New() Module {
	return Module{}
}

// ID returns the module identifier.
func (Module) ID() string { return "notify" }

// Mount wires the sign-up routes.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Subscriptions == nil {
		return module.Mount{}, errors.New("subscription store is required")
	}
	svc := service{
		store:      deps.Subscriptions,
		clock:      deps.Clock,
		scheduler:  deps.Scheduler,
		delay:      deps.SubmitDelay,
		resetAfter: deps.StatusResetAfter,
		logger:     logging.OrNop(deps.Logger).Named("notify"),
	}
	if svc.clock == nil {
		svc.clock = clock.System{}
	}
	if svc.scheduler == nil {
		svc.scheduler = clock.System{}
	}
	if svc.delay < 0 {
		svc.delay = 0
	}
	if svc.resetAfter <= 0 {
		svc.resetAfter = DefaultResetAfter
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{service: svc})
	return module.Mount{Paths: []string{routepath.Notify}, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodPost+" "+routepath.Notify, h.handleSubmit)
	mux.HandleFunc(routepath.Notify, httpx.MethodNotAllowed(http.MethodPost))
}

var _ module.Module = Module{}
