// Package landing serves the full coming-soon page and the not-found page.
package landing

import (
	"errors"
	"net/http"

	"github.com/beztern/launchpad/internal/platform/clock"
	"github.com/beztern/launchpad/internal/platform/logging"
	module "github.com/beztern/launchpad/internal/services/launchpad/module"
	"github.com/beztern/launchpad/internal/services/launchpad/routepath"
)

// Module owns the root path and everything no other module claims.
type Module struct{}

// New returns the landing module.
func New() Module {
	return Module{}
}

// ID returns the module identifier.
func (Module) ID() string { return "landing" }

// Mount wires the landing routes.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Countdown == nil {
		return module.Mount{}, errors.New("countdown reader is required")
	}
	h := handlers{
		countdown:  deps.Countdown,
		site:       deps.Site,
		clock:      deps.Clock,
		resetAfter: deps.StatusResetAfter,
		logger:     logging.OrNop(deps.Logger).Named("landing"),
	}
	if h.clock == nil {
		h.clock = clock.System{}
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Paths: []string{routepath.Root}, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(routepath.Root, h.handleNotFound)
}

var _ module.Module = Module{}
