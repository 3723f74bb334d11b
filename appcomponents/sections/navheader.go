package sections

import (
	"github.com/vcrobe/landing/runtime"
	"github.com/vcrobe/landing/vdom"
)

// menuGroup is one column of the mega menu.
type menuGroup struct {
	Title string
	Links []menuLink
}

type menuLink struct {
	Label       string
	Href        string
	Description string
}

var megaMenu = []menuGroup{
	{
		Title: "Solutions",
		Links: []menuLink{
			{"Greenhouse monitoring", "#solution-features", "Temperature, air humidity and soil moisture at a glance"},
			{"Automatic irrigation", "#solution-features", "Pump control driven by live soil readings"},
			{"Reading history", "#solution-features", "Every sample stored and queryable"},
		},
	},
	{
		Title: "Platform",
		Links: []menuLink{
			{"Sensor gateway", "#tech", "HTTP ingestion for field devices"},
			{"Data API", "/showdata", "JSON access to stored readings"},
			{"Metrics", "/metrics", "Prometheus metrics for renders and ingestion"},
		},
	},
}

// NavHeader is the top navigation bar with a grouped mega menu.
type NavHeader struct {
	runtime.ComponentBase
}

func (h *NavHeader) Render(r runtime.Renderer) *vdom.VNode {
	groups := make([]*vdom.VNode, 0, len(megaMenu))
	for _, g := range megaMenu {
		links := make([]*vdom.VNode, 0, len(g.Links))
		for _, l := range g.Links {
			links = append(links, vdom.Li("", map[string]any{"class": "mega-menu__item"},
				vdom.Anchor(l.Href, l.Label, map[string]any{"class": "mega-menu__link"}),
				vdom.Paragraph(l.Description, map[string]any{"class": "mega-menu__hint"}),
			))
		}
		groups = append(groups, vdom.Div(map[string]any{"class": "mega-menu__group"},
			vdom.H3(g.Title, map[string]any{"class": "mega-menu__title"}),
			vdom.Ul(map[string]any{"class": "mega-menu__links"}, links...),
		))
	}

	return vdom.Header(root(NavHeaderName, "nav-header"),
		vdom.Anchor("/", "Verdant", map[string]any{"class": "nav-header__brand"}),
		vdom.Nav(map[string]any{"class": "mega-menu", "aria-label": "Main"}, groups...),
		vdom.Div(map[string]any{"class": "nav-header__actions"},
			vdom.Anchor("#hero", "Log in", map[string]any{"class": "btn btn-ghost"}),
			vdom.Anchor("#hero", "Get started", map[string]any{"class": "btn btn-primary"}),
		),
	)
}
