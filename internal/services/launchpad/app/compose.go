// Package app composes launchpad modules into one root handler.
package app

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	module "github.com/beztern/launchpad/internal/services/launchpad/module"
)

// ComposeInput carries modules and the dependencies they mount with.
type ComposeInput struct {
	Dependencies module.Dependencies
	Modules      []module.Module
}

// Composer wires module paths into a root mux.
type Composer struct{}

// Compose builds a root HTTP handler from modules. Two modules may not claim
// the same path.
func (Composer) Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)
	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		if err := mountModule(root, feature, input.Dependencies, seen); err != nil {
			return nil, err
		}
	}
	return requireSameOrigin(root), nil
}

func mountModule(root *http.ServeMux, feature module.Module, deps module.Dependencies, seen map[string]string) error {
	mount, err := feature.Mount(deps)
	if err != nil {
		return fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	if len(mount.Paths) == 0 {
		return fmt.Errorf("mount module %q: at least one path is required", feature.ID())
	}
	for _, raw := range mount.Paths {
		path := normalizePath(raw)
		if path == "" {
			return fmt.Errorf("mount module %q: path is required", feature.ID())
		}
		if previous, ok := seen[path]; ok {
			return fmt.Errorf("module %q duplicates path %q owned by module %q", feature.ID(), path, previous)
		}
		seen[path] = feature.ID()
		root.Handle(path, mount.Handler)
	}
	return nil
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// requireSameOrigin rejects browser mutations whose Origin names another host.
// Requests without an Origin header pass, so curl and server-side callers work.
func requireSameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutationMethod(r) || hasSameOriginProof(r) {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	})
}

func isMutationMethod(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSameOriginProof(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	return strings.EqualFold(parsed.Host, r.Host)
}
