package runtime

import "github.com/vcrobe/landing/vdom"

// Renderer defines the minimal set of runtime operations used by Render() code.
// This interface has no build tags; the server renderer and the in-memory
// test renderer both implement it.
type Renderer interface {
	// RenderChild is used by page components to render child components.
	// The key parameter uniquely identifies the component instance for state preservation.
	RenderChild(key string, childWithProps Component) *vdom.VNode

	// ReRender requests that the renderer re-run the render cycle.
	// Used by StateHasChanged() when component state changes.
	ReRender()

	// Navigate resolves the given path to a new root component.
	Navigate(path string) error
}

// Navigator resolves a path to the component that should become the root.
// The router implements it.
type Navigator interface {
	Navigate(path string) (Component, error)
}
