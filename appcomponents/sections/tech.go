package sections

import (
	"github.com/vcrobe/landing/runtime"
	"github.com/vcrobe/landing/vdom"
)

// TechItem describes one building block of the platform.
type TechItem struct {
	Name    string
	Role    string
	LogoURL string
}

// TechSection lists the technology the platform is built on.
type TechSection struct {
	runtime.ComponentBase
	items []TechItem
}

func (t *TechSection) OnInit() {
	t.items = []TechItem{
		{"Sensor nodes", "Microcontrollers post readings over HTTP", "/static/logos/sensor.svg"},
		{"Gateway", "Validates and stores every sample", "/static/logos/gateway.svg"},
		{"Data API", "JSON history of every reading", "/static/logos/api.svg"},
		{"SQLite", "Local storage for the reading history", "/static/logos/sqlite.svg"},
	}
}

func (t *TechSection) Render(r runtime.Renderer) *vdom.VNode {
	items := make([]*vdom.VNode, 0, len(t.items))
	for _, it := range t.items {
		items = append(items, vdom.Li("", map[string]any{"class": "tech__item"},
			vdom.Img(it.LogoURL, it.Name, map[string]any{"class": "tech__logo", "loading": "lazy"}),
			vdom.Span(it.Name, map[string]any{"class": "tech__name"}),
			vdom.Span(it.Role, map[string]any{"class": "tech__role"}),
		))
	}

	return vdom.Section(root(TechSectionName, "tech"),
		vdom.H2("Built on proven parts", map[string]any{"class": "section__title"}),
		vdom.Ul(map[string]any{"class": "tech__list"}, items...),
	)
}
