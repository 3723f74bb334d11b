package pages

import (
	"net/http"

	"github.com/vcrobe/landing/appcomponents/sections"
	"github.com/vcrobe/landing/runtime"
	"github.com/vcrobe/landing/vdom"
)

// NotFound is rendered for paths no route matches.
type NotFound struct {
	runtime.ComponentBase
	Path string
}

func (p *NotFound) Render(r runtime.Renderer) *vdom.VNode {
	header, _ := sections.New(sections.NavHeaderName)
	return vdom.Fragment(
		r.RenderChild("notfound/"+string(sections.NavHeaderName), header),
		vdom.Section(map[string]any{"class": "not-found", "data-page": "not-found"},
			vdom.H1("Page not found", nil),
			vdom.Paragraph("Nothing lives at "+p.Path+".", map[string]any{"class": "not-found__path"}),
			vdom.Anchor("/", "Back to the home page", map[string]any{"class": "btn btn-primary"}),
		),
	)
}

// StatusCode tells the HTTP layer to answer with 404.
func (p *NotFound) StatusCode() int {
	return http.StatusNotFound
}
