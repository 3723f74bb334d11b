package vdom

// VNode represents a virtual DOM node.
// A VNode with an empty Tag is a fragment: only its children are rendered.
type VNode struct {
	Tag        string         // The HTML tag name, empty for fragments
	Attributes map[string]any // The attributes of the node
	Children   []*VNode       // The child nodes
	Content    string         // The text content of the node
	OnClick    func()         // Optional click event handler, never serialized
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	var onClick func()
	if attributes != nil {
		if v, ok := attributes["onClick"]; ok {
			if f, ok := v.(func()); ok {
				onClick = f
				// Remove from attributes so it doesn't get rendered as an HTML attribute
				delete(attributes, "onClick")
			}
		}
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   compact(children),
		Content:    content,
		OnClick:    onClick,
	}
}

// compact drops nil children so callers can pass optional nodes inline.
func compact(children []*VNode) []*VNode {
	if len(children) == 0 {
		return nil
	}
	out := children[:0:0]
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// IsFragment reports whether the node renders only its children.
func (v *VNode) IsFragment() bool {
	return v != nil && v.Tag == ""
}

// Attr returns the attribute value stored under key.
func (v *VNode) Attr(key string) (any, bool) {
	if v == nil || v.Attributes == nil {
		return nil, false
	}
	val, ok := v.Attributes[key]
	return val, ok
}

// Fragment groups children without introducing a wrapper element.
func Fragment(children ...*VNode) *VNode {
	return NewVNode("", nil, children, "")
}

// Paragraph creates a <p> VNode with the given text as its child and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Header creates a <header> VNode.
func Header(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("header", attrs, children, "")
}

// Nav creates a <nav> VNode.
func Nav(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("nav", attrs, children, "")
}

// Section creates a <section> VNode.
func Section(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("section", attrs, children, "")
}

// H1 creates an <h1> VNode.
func H1(text string, attrs map[string]any) *VNode {
	return NewVNode("h1", attrs, nil, text)
}

// H2 creates an <h2> VNode.
func H2(text string, attrs map[string]any) *VNode {
	return NewVNode("h2", attrs, nil, text)
}

// H3 creates an <h3> VNode.
func H3(text string, attrs map[string]any) *VNode {
	return NewVNode("h3", attrs, nil, text)
}

// Span creates a <span> VNode.
func Span(text string, attrs map[string]any) *VNode {
	return NewVNode("span", attrs, nil, text)
}

// Anchor creates an <a href> VNode.
func Anchor(href, text string, attrs map[string]any) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["href"] = href
	return NewVNode("a", attrs, nil, text)
}

// Ul creates a <ul> VNode.
func Ul(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("ul", attrs, children, "")
}

// Li creates an <li> VNode. Content and children may be combined.
func Li(text string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("li", attrs, children, text)
}

// Img creates an <img> VNode.
func Img(src, alt string, attrs map[string]any) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["src"] = src
	attrs["alt"] = alt
	return NewVNode("img", attrs, nil, "")
}
