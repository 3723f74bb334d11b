package runtime

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/vcrobe/landing/console"
	"github.com/vcrobe/landing/vdom"
)

const rootKey = "__root__"

// maxPasses bounds how many times a single render may be repeated because a
// component called StateHasChanged while the tree was being built.
const maxPasses = 8

var (
	// ErrNoNavigator is returned by Navigate when no Navigator was configured.
	ErrNoNavigator = errors.New("runtime: no navigator configured")
	// ErrNoRoot is returned when a render is requested without a root component.
	ErrNoRoot = errors.New("runtime: no root component")
	// ErrRenderPanic wraps a panic recovered from a component's Render method.
	ErrRenderPanic = errors.New("runtime: component panicked during render")
	// ErrRenderLoop is returned when components keep requesting re-renders.
	ErrRenderLoop = errors.New("runtime: render did not settle")
)

// renderPanic carries the key of the component whose Render panicked up to
// the root recovery point.
type renderPanic struct {
	key string
	val any
}

// Compile-time assertion to ensure StaticRenderer implements the Renderer interface.
var _ Renderer = (*StaticRenderer)(nil)

// Option configures a StaticRenderer.
type Option func(*StaticRenderer)

// WithNavigator enables Navigate by resolving paths through nav.
func WithNavigator(nav Navigator) Option {
	return func(r *StaticRenderer) { r.navigator = nav }
}

// WithDevMode lets panics from components propagate instead of being
// recovered and logged.
func WithDevMode(dev bool) Option {
	return func(r *StaticRenderer) { r.dev = dev }
}

// WithPanicHandler registers fn to be told about every recovered panic.
// hook is the lifecycle method or "Render".
func WithPanicHandler(fn func(key, hook string, recovered any)) Option {
	return func(r *StaticRenderer) { r.onPanic = fn }
}

// StaticRenderer renders a component tree to a VNode tree in memory, for
// serialization on the server. It manages the component instance tree and
// the lifecycle hooks the same way across passes.
//
// A StaticRenderer is not safe for concurrent use; build one per request.
type StaticRenderer struct {
	instances    map[string]Component
	initialized  map[string]bool // Track which components have been initialized
	activeKeys   map[string]bool // Track which components are active in the current render
	renderedKeys []string        // Child keys in render order for the latest pass
	root         Component
	navigator    Navigator
	dev          bool
	onPanic      func(key, hook string, recovered any)

	rendering bool
	dirty     bool
	current   *vdom.VNode
	err       error
}

// NewStaticRenderer creates a server-side renderer.
func NewStaticRenderer(opts ...Option) *StaticRenderer {
	r := &StaticRenderer{
		instances:   make(map[string]Component),
		initialized: make(map[string]bool),
		activeKeys:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render makes root the current component and renders it.
func (r *StaticRenderer) Render(ctx context.Context, root Component) (*vdom.VNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	if !sameComponent(root, r.root) {
		// A different root starts a fresh lifecycle.
		delete(r.initialized, rootKey)
	}
	r.root = root
	r.renderRoot()
	return r.current, r.err
}

// Current returns the tree produced by the latest pass.
func (r *StaticRenderer) Current() *vdom.VNode {
	return r.current
}

// Err returns the error of the latest pass.
func (r *StaticRenderer) Err() error {
	return r.err
}

// RenderedKeys returns the child keys rendered during the latest pass, in
// the order RenderChild was called.
func (r *StaticRenderer) RenderedKeys() []string {
	out := make([]string, len(r.renderedKeys))
	copy(out, r.renderedKeys)
	return out
}

// renderRoot runs render passes until no component asks for another one.
func (r *StaticRenderer) renderRoot() {
	if r.root == nil {
		r.current, r.err = nil, ErrNoRoot
		return
	}

	r.rendering = true
	defer func() { r.rendering = false }()

	for pass := 0; pass < maxPasses; pass++ {
		r.dirty = false
		r.current, r.err = r.renderPass()
		if r.err != nil || !r.dirty {
			return
		}
	}
	r.err = fmt.Errorf("%w after %d passes", ErrRenderLoop, maxPasses)
}

func (r *StaticRenderer) renderPass() (node *vdom.VNode, err error) {
	// Reset activeKeys for this render cycle
	r.activeKeys = make(map[string]bool)
	r.renderedKeys = r.renderedKeys[:0]

	root := r.root
	root.SetRenderer(r)

	if !r.initialized[rootKey] {
		// Call OnInit only once, before first render
		if initializer, ok := root.(Initializer); ok {
			r.callHook(rootKey, "OnInit", initializer.OnInit)
		}
		r.initialized[rootKey] = true
	}

	// Call OnPropertiesSet before every render (including first)
	if receiver, ok := root.(ParameterReceiver); ok {
		r.callHook(rootKey, "OnPropertiesSet", receiver.OnPropertiesSet)
	}

	if !r.dev {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			key, val := rootKey, rec
			if rp, ok := rec.(renderPanic); ok {
				key, val = rp.key, rp.val
			}
			r.reportPanic(key, "Render", val)
			node, err = nil, fmt.Errorf("%w: %s: %v", ErrRenderPanic, key, val)
		}()
	}

	node = root.Render(r)

	// Clean up components that were not rendered in this cycle
	r.cleanupUnmountedComponents()
	return node, nil
}

// RenderChild renders a child component. The instance first seen under key
// is preserved across passes; later passes apply new props to it.
func (r *StaticRenderer) RenderChild(key string, childWithProps Component) *vdom.VNode {
	// Mark this component as active in the current render cycle
	r.activeKeys[key] = true
	r.renderedKeys = append(r.renderedKeys, key)

	instance, exists := r.instances[key]
	isFirstRender := false

	if !exists {
		instance = childWithProps
		r.instances[key] = instance
		isFirstRender = true
	} else if updater, ok := instance.(PropUpdater); ok {
		updater.ApplyProps(childWithProps)
	}

	instance.SetRenderer(r)

	if isFirstRender {
		if initializer, ok := instance.(Initializer); ok {
			r.callHook(key, "OnInit", initializer.OnInit)
		}
		r.initialized[key] = true
	}

	if receiver, ok := instance.(ParameterReceiver); ok {
		r.callHook(key, "OnPropertiesSet", receiver.OnPropertiesSet)
	}

	if r.dev {
		return instance.Render(r)
	}
	return r.renderChildSafely(key, instance)
}

// renderChildSafely tags a panic with the child's key before letting it
// unwind to the root.
func (r *StaticRenderer) renderChildSafely(key string, instance Component) *vdom.VNode {
	defer func() {
		if rec := recover(); rec != nil {
			if _, tagged := rec.(renderPanic); tagged {
				panic(rec)
			}
			panic(renderPanic{key: key, val: rec})
		}
	}()
	return instance.Render(r)
}

// cleanupUnmountedComponents removes components that are no longer in the tree
// and calls their OnDestroy lifecycle method if they implement the Cleaner interface.
func (r *StaticRenderer) cleanupUnmountedComponents() {
	for key, instance := range r.instances {
		if r.activeKeys[key] {
			continue
		}
		if cleaner, ok := instance.(Cleaner); ok {
			r.callHook(key, "OnDestroy", cleaner.OnDestroy)
		}
		delete(r.instances, key)
		delete(r.initialized, key)
	}
}

// Destroy tears down every tracked child, calling OnDestroy where implemented.
func (r *StaticRenderer) Destroy() {
	r.activeKeys = make(map[string]bool)
	r.cleanupUnmountedComponents()
	if cleaner, ok := r.root.(Cleaner); ok {
		r.callHook(rootKey, "OnDestroy", cleaner.OnDestroy)
	}
	r.root = nil
	delete(r.initialized, rootKey)
}

// ReRender re-runs the render cycle for the current root. When called while
// a pass is in progress, the pass is repeated once it finishes.
func (r *StaticRenderer) ReRender() {
	if r.rendering {
		r.dirty = true
		return
	}
	r.renderRoot()
}

// Navigate replaces the root with the component the Navigator resolves for
// path and renders it.
func (r *StaticRenderer) Navigate(path string) error {
	if r.navigator == nil {
		return ErrNoNavigator
	}
	next, err := r.navigator.Navigate(path)
	if err != nil {
		return fmt.Errorf("navigate %q: %w", path, err)
	}
	if r.root != nil && !sameComponent(r.root, next) {
		if cleaner, ok := r.root.(Cleaner); ok {
			r.callHook(rootKey, "OnDestroy", cleaner.OnDestroy)
		}
		delete(r.initialized, rootKey)
	}
	r.root = next
	r.ReRender()
	return nil
}

// callHook invokes a lifecycle method. In dev mode panics propagate to aid
// debugging; otherwise they are recovered and logged.
func (r *StaticRenderer) callHook(key, hook string, fn func()) {
	if r.dev {
		fn()
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.reportPanic(key, hook, rec)
		}
	}()
	fn()
}

func (r *StaticRenderer) reportPanic(key, hook string, rec any) {
	console.Error(fmt.Sprintf("%s panic in component %s: %v", hook, key, rec))
	if r.onPanic != nil {
		r.onPanic(key, hook, rec)
	}
}

// sameComponent reports whether a and b are the same instance. Only pointer
// components have an identity; comparing other dynamic types could panic.
func sameComponent(a, b Component) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Pointer || vb.Kind() != reflect.Pointer {
		return false
	}
	return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
}
