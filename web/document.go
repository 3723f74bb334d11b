package web

import (
	"bytes"
	"fmt"
	"io"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/vcrobe/landing/vdom"
)

// MountID is the id of the element the page tree is rendered into.
const MountID = "app"

// Document describes the HTML shell around a rendered page.
type Document struct {
	Title       string
	Description string
	Lang        string
	Stylesheet  string
}

// Render writes a complete HTML document with tree mounted in the body.
func (d Document) Render(w io.Writer, tree *vdom.VNode) error {
	var body bytes.Buffer
	if err := vdom.RenderHTML(&body, tree); err != nil {
		return fmt.Errorf("render page tree: %w", err)
	}
	return d.node(body.String()).Render(w)
}

func (d Document) node(body string) g.Node {
	lang := d.Lang
	if lang == "" {
		lang = "en"
	}

	return Doctype(
		HTML(
			Lang(lang),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(d.Title)),
				g.If(d.Description != "", Meta(Name("description"), Content(d.Description))),
				g.If(d.Stylesheet != "", Link(Rel("stylesheet"), Href(d.Stylesheet))),
			),
			Body(
				Div(ID(MountID), g.Raw(body)),
			),
		),
	)
}
