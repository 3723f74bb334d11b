// Package testcomponents provides an in-memory renderer for component tests.
package testcomponents

import (
	"github.com/vcrobe/landing/runtime"
	"github.com/vcrobe/landing/vdom"
)

// TestRenderer is a minimal test harness that implements runtime.Renderer
// for in-memory testing without an HTTP server.
//
// It captures VDOM output from component renders and allows tests to:
// - Attach components to the renderer
// - Trigger re-renders via StateHasChanged()
// - Inspect the resulting VDOM tree and the children rendered into it
type TestRenderer struct {
	currentVDOM *vdom.VNode
	component   runtime.Component
	childKeys   []string
	navigations []string
	initialized bool
}

// Compile-time assertion to ensure TestRenderer implements runtime.Renderer interface.
var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer attached to the given component.
func NewTestRenderer(comp runtime.Component) *TestRenderer {
	r := &TestRenderer{
		component: comp,
	}
	comp.SetRenderer(r)
	return r
}

// RenderRoot performs the initial render of the component.
// This should be called at the start of a test to get the initial VDOM.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	r.ReRender()
	return r.currentVDOM
}

// ReRender performs a re-render of the component.
// This is called by StateHasChanged() when the component requests a re-render.
func (r *TestRenderer) ReRender() {
	if !r.initialized {
		if initializer, ok := r.component.(runtime.Initializer); ok {
			initializer.OnInit()
		}
		r.initialized = true
	}
	r.childKeys = r.childKeys[:0]
	r.currentVDOM = r.component.Render(r)
}

// GetCurrentVDOM returns the most recently rendered VDOM tree.
// Tests use this to inspect the component's output after renders.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	return r.currentVDOM
}

// ChildKeys returns the keys passed to RenderChild during the latest render.
func (r *TestRenderer) ChildKeys() []string {
	out := make([]string, len(r.childKeys))
	copy(out, r.childKeys)
	return out
}

// RenderChild renders child directly. Instances are not preserved between
// renders, so OnInit runs on every render of a child.
func (r *TestRenderer) RenderChild(key string, child runtime.Component) *vdom.VNode {
	r.childKeys = append(r.childKeys, key)
	child.SetRenderer(r)
	if initializer, ok := child.(runtime.Initializer); ok {
		initializer.OnInit()
	}
	return child.Render(r)
}

// Navigate records the requested path. Tests inspect it with Navigations.
func (r *TestRenderer) Navigate(path string) error {
	r.navigations = append(r.navigations, path)
	return nil
}

// Navigations returns every path passed to Navigate.
func (r *TestRenderer) Navigations() []string {
	return r.navigations
}
