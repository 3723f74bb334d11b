package sections

import (
	"github.com/vcrobe/landing/runtime"
	"github.com/vcrobe/landing/vdom"
)

// Feature is one card in the solution grid.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// SolutionFeatures is the grid of product capabilities.
type SolutionFeatures struct {
	runtime.ComponentBase
	features []Feature
}

func (s *SolutionFeatures) OnInit() {
	s.features = []Feature{
		{"thermometer", "Live climate", "Temperature and air humidity sampled continuously from each sensor node."},
		{"droplets", "Soil-aware watering", "The pump switches on only when soil moisture drops below your threshold."},
		{"database", "Complete history", "Every reading is timestamped and stored, ready for charts and exports."},
		{"plug", "Works offline", "The gateway keeps recording even when upstream services are unreachable."},
	}
}

func (s *SolutionFeatures) Render(r runtime.Renderer) *vdom.VNode {
	cards := make([]*vdom.VNode, 0, len(s.features))
	for _, f := range s.features {
		cards = append(cards, vdom.Div(map[string]any{"class": "feature-card", "data-icon": f.Icon},
			vdom.H3(f.Title, map[string]any{"class": "feature-card__title"}),
			vdom.Paragraph(f.Description, map[string]any{"class": "feature-card__body"}),
		))
	}

	return vdom.Section(root(SolutionFeaturesName, "solution-features"),
		vdom.H2("Everything a growing operation needs", map[string]any{"class": "section__title"}),
		vdom.Div(map[string]any{"class": "feature-grid"}, cards...),
	)
}
