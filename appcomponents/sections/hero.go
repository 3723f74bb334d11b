package sections

import (
	"github.com/vcrobe/landing/runtime"
	"github.com/vcrobe/landing/vdom"
)

// HeroSection is the headline block under the navigation header.
type HeroSection struct {
	runtime.ComponentBase
}

func (h *HeroSection) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Section(root(HeroSectionName, "hero"),
		vdom.H1("Grow more with less guesswork", map[string]any{"class": "hero__title"}),
		vdom.Paragraph(
			"Verdant collects temperature, humidity and soil readings from every bed, "+
				"keeps the full history, and waters only when the soil asks for it.",
			map[string]any{"class": "hero__subtitle"},
		),
		vdom.Div(map[string]any{"class": "hero__actions"},
			vdom.Anchor("#solution-features", "See how it works", map[string]any{"class": "btn btn-primary"}),
			vdom.Anchor("#tech", "Read the docs", map[string]any{"class": "btn btn-ghost"}),
		),
	)
}
