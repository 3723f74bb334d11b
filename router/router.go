// Package router maps URL paths to page components.
//
// Patterns are literal segments or {name} parameters, e.g. "/revisions/{rev}".
// The same patterns are mounted on the HTTP mux by the web package, and the
// Router itself implements runtime.Navigator for in-process navigation.
package router

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/vcrobe/landing/runtime"
)

// ErrNoRoute is returned by Navigate when no route matches and no
// not-found handler is registered.
var ErrNoRoute = errors.New("router: no route for path")

// ParamPath is the parameter the not-found factory receives the
// unmatched path under.
const ParamPath = "path"

// Route pairs a pattern with the factory that builds its page.
type Route struct {
	Pattern string
	Factory runtime.ComponentFactory
}

// Router holds routes in registration order; the first match wins.
type Router struct {
	mu       sync.RWMutex
	routes   []Route
	notFound runtime.ComponentFactory
}

// Compile-time assertion to ensure Router implements runtime.Navigator.
var _ runtime.Navigator = (*Router)(nil)

// New creates an empty Router.
func New() *Router {
	return &Router{}
}

// Handle registers factory for pattern. It panics on a malformed pattern or
// a duplicate registration, the same way http muxes do.
func (r *Router) Handle(pattern string, factory runtime.ComponentFactory) {
	if err := validatePattern(pattern); err != nil {
		panic(err)
	}
	if factory == nil {
		panic(fmt.Sprintf("router: nil factory for %q", pattern))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.routes {
		if normalize(rt.Pattern) == normalize(pattern) {
			panic(fmt.Sprintf("router: duplicate route %q", pattern))
		}
	}
	r.routes = append(r.routes, Route{Pattern: pattern, Factory: factory})
}

// HandleNotFound sets the factory used when no route matches.
func (r *Router) HandleNotFound(factory runtime.ComponentFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = factory
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Resolve returns the page for path and the parameters captured from it.
// Only cleaned paths match: "//", "/a/" or "/a/./b" never reach a route.
// When no route matches, found is false and the component comes from the
// not-found factory (nil if none is registered).
func (r *Router) Resolve(path string) (comp runtime.Component, params map[string]string, found bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rt := range r.routes {
		if matchesPattern(rt.Pattern, path) {
			params = extractParams(rt.Pattern, path)
			return rt.Factory(params), params, true
		}
	}

	if r.notFound == nil {
		return nil, nil, false
	}
	params = map[string]string{ParamPath: path}
	return r.notFound(params), params, false
}

// Navigate implements runtime.Navigator. Unmatched paths resolve to the
// not-found page when one is registered.
func (r *Router) Navigate(path string) (runtime.Component, error) {
	comp, _, _ := r.Resolve(path)
	if comp == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRoute, path)
	}
	return comp, nil
}

func validatePattern(pattern string) error {
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("router: pattern %q must start with /", pattern)
	}
	seen := make(map[string]bool)
	for _, part := range splitPath(pattern) {
		if !isParam(part) {
			if strings.ContainsAny(part, "{}") {
				return fmt.Errorf("router: malformed segment %q in %q", part, pattern)
			}
			continue
		}
		name := strings.Trim(part, "{}")
		if name == "" {
			return fmt.Errorf("router: empty parameter name in %q", pattern)
		}
		if seen[name] {
			return fmt.Errorf("router: parameter %q repeated in %q", name, pattern)
		}
		seen[name] = true
	}
	return nil
}

func normalize(path string) string {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

func splitPath(path string) []string {
	trimmed := strings.Trim(normalize(path), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// canonical reports whether p is an absolute path in cleaned form. The empty
// path stands for the root.
func canonical(p string) bool {
	return p == "" || (strings.HasPrefix(p, "/") && path.Clean(p) == p)
}

func isParam(segment string) bool {
	return len(segment) > 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}

// matchesPattern checks if an actual path matches a route pattern.
func matchesPattern(pattern, path string) bool {
	if !canonical(path) {
		return false
	}
	if normalize(pattern) == normalize(path) {
		return true
	}

	patternParts := splitPath(pattern)
	pathParts := splitPath(path)

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range patternParts {
		if isParam(patternParts[i]) {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if patternParts[i] != pathParts[i] {
			return false
		}
	}

	return true
}

// extractParams parses URL parameters from a path based on route pattern.
func extractParams(pattern, path string) map[string]string {
	patternParts := splitPath(pattern)
	pathParts := splitPath(path)

	params := make(map[string]string)
	for i := range patternParts {
		if i >= len(pathParts) {
			break
		}
		if isParam(patternParts[i]) {
			params[strings.Trim(patternParts[i], "{}")] = pathParts[i]
		}
	}
	return params
}
