package runtime

import "github.com/vcrobe/landing/vdom"

// Component interface defines the structure for all components in the framework.
// The Render method accepts the Renderer interface (not concrete type) so the
// server renderer and the test harness can both drive the same component.
type Component interface {
	// Render generates the virtual DOM tree for this component.
	// The renderer parameter provides access to framework services like RenderChild.
	Render(r Renderer) *vdom.VNode

	// SetRenderer is called by the framework to attach the renderer to the component.
	// This enables StateHasChanged() to trigger re-renders.
	SetRenderer(r Renderer)
}

// ComponentFactory builds a fresh component for a matched route.
// params holds the values captured by {name} segments of the route pattern.
type ComponentFactory func(params map[string]string) Component

// Initializer is implemented by components that need one-time setup.
// OnInit runs once per component instance, before its first render.
type Initializer interface {
	OnInit()
}

// ParameterReceiver is implemented by components that derive state from
// their properties. OnPropertiesSet runs before every render.
type ParameterReceiver interface {
	OnPropertiesSet()
}

// PropUpdater copies new property values from a freshly built component
// onto the instance preserved from an earlier render.
type PropUpdater interface {
	ApplyProps(source Component)
}

// Cleaner is implemented by components that release resources when they
// leave the tree.
type Cleaner interface {
	OnDestroy()
}
