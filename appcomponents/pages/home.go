package pages

import (
	"fmt"

	"github.com/vcrobe/landing/appcomponents/sections"
	"github.com/vcrobe/landing/runtime"
	"github.com/vcrobe/landing/vdom"
)

// Home is the landing page. It accepts no properties: it renders the
// sections of its revision, top to bottom, inside a fragment.
// The zero value renders LatestRevision.
type Home struct {
	runtime.ComponentBase
	revision Revision
}

// NewHomeAt returns a Home pinned to an earlier revision of the page.
func NewHomeAt(rev Revision) (*Home, error) {
	if !rev.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRevision, int(rev))
	}
	return &Home{revision: rev}, nil
}

// Revision returns the revision this page renders.
func (h *Home) Revision() Revision {
	if h.revision == 0 {
		return LatestRevision
	}
	return h.revision
}

// CacheKey identifies the rendered output. Every Home at the same revision
// renders the same markup, whatever path it was requested under.
func (h *Home) CacheKey() string {
	return "home/" + h.Revision().String()
}

func (h *Home) Render(r runtime.Renderer) *vdom.VNode {
	names := h.Revision().Sections()
	children := make([]*vdom.VNode, 0, len(names))
	for _, name := range names {
		section, err := sections.New(name)
		if err != nil {
			// A revision must render every one of its sections.
			panic(fmt.Sprintf("home %s: %v", h.Revision(), err))
		}
		children = append(children, r.RenderChild(SectionKey(name), section))
	}
	return vdom.Fragment(children...)
}

// SectionKey is the RenderChild key Home uses for a section.
func SectionKey(name sections.Name) string {
	return "home/" + string(name)
}
