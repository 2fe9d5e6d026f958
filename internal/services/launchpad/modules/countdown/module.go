// Package countdown serves the countdown read model as an HTMX fragment, a
// JSON snapshot and a WebSocket stream.
package countdown

import (
	"errors"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/beztern/launchpad/internal/platform/logging"
	module "github.com/beztern/launchpad/internal/services/launchpad/module"
	"github.com/beztern/launchpad/internal/services/launchpad/routepath"
)

// Module owns the countdown routes.
type Module struct{}

// New returns the countdown module.
func New() Module {
	return Module{}
}

// ID returns the module identifier.
func (Module) ID() string { return "countdown" }

// Mount wires the countdown routes. The stream route is only mounted when a
// hub is configured.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Countdown == nil {
		return module.Mount{}, errors.New("countdown reader is required")
	}
	h := handlers{
		countdown: deps.Countdown,
		stream:    deps.Stream,
		logger:    logging.OrNop(deps.Logger).Named("countdown"),
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	paths := []string{routepath.Countdown, routepath.APICountdown}
	if h.stream != nil {
		paths = append(paths, routepath.WSCountdown)
	}
	return module.Mount{Paths: paths, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Countdown, h.handleFragment)
	mux.HandleFunc(http.MethodGet+" "+routepath.APICountdown, h.handleSnapshot)
	if h.stream != nil {
		mux.Handle(http.MethodGet+" "+routepath.WSCountdown, websocket.Handler(h.handleStream))
	}
}

var _ module.Module = Module{}
