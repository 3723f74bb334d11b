// Package sections holds the self-contained presentational blocks the
// landing page is assembled from. Each section takes no input and renders a
// root element tagged with data-section so its position is visible in markup.
package sections

import (
	"fmt"

	"github.com/vcrobe/landing/runtime"
)

// Name identifies a section.
type Name string

const (
	NavHeaderName        Name = "nav-header"
	HeroSectionName      Name = "hero"
	SolutionFeaturesName Name = "solution-features"
	TechSectionName      Name = "tech"
)

// AttrSection is the attribute carrying the section name on its root node.
const AttrSection = "data-section"

// All lists every section in page order.
var All = []Name{NavHeaderName, HeroSectionName, SolutionFeaturesName, TechSectionName}

var factories = map[Name]func() runtime.Component{
	NavHeaderName:        func() runtime.Component { return &NavHeader{} },
	HeroSectionName:      func() runtime.Component { return &HeroSection{} },
	SolutionFeaturesName: func() runtime.Component { return &SolutionFeatures{} },
	TechSectionName:      func() runtime.Component { return &TechSection{} },
}

// New builds a fresh instance of the named section.
func New(name Name) (runtime.Component, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", name)
	}
	return factory(), nil
}

// root stamps the section attribute and class on a section's outer node attributes.
func root(name Name, class string) map[string]any {
	return map[string]any{
		AttrSection: string(name),
		"class":     class,
		"id":        string(name),
	}
}
