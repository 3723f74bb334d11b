// Package appcomponents wires the landing pages into a router.
package appcomponents

import (
	"github.com/vcrobe/landing/appcomponents/pages"
	"github.com/vcrobe/landing/router"
	"github.com/vcrobe/landing/runtime"
)

// Route patterns.
const (
	RouteHome     = "/"
	RouteRevision = "/revisions/{rev}"
)

// NewRouter registers the landing routes. "/" serves Home at home; every
// published revision stays reachable under /revisions/{rev}.
func NewRouter(home pages.Revision) *router.Router {
	r := router.New()

	r.Handle(RouteHome, func(params map[string]string) runtime.Component {
		page, err := pages.NewHomeAt(home)
		if err != nil {
			return &pages.Home{}
		}
		return page
	})

	r.Handle(RouteRevision, func(params map[string]string) runtime.Component {
		rev, err := pages.ParseRevision(params["rev"])
		if err != nil {
			return &pages.NotFound{Path: "/revisions/" + params["rev"]}
		}
		page, _ := pages.NewHomeAt(rev)
		return page
	})

	r.HandleNotFound(func(params map[string]string) runtime.Component {
		return &pages.NotFound{Path: params[router.ParamPath]}
	})

	return r
}
