package vdom

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements never carry children or text when serialized.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// RenderHTML serializes the tree rooted at n as HTML.
// Escaping is delegated to golang.org/x/net/html. A nil tree writes nothing.
func RenderHTML(w io.Writer, n *VNode) error {
	for _, node := range toHTML(n) {
		if err := html.Render(w, node); err != nil {
			return fmt.Errorf("render <%s>: %w", node.Data, err)
		}
	}
	return nil
}

// RenderString is RenderHTML into a string.
func RenderString(n *VNode) (string, error) {
	var sb strings.Builder
	if err := RenderHTML(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// toHTML converts a VNode into html nodes. Fragments expand to their children.
func toHTML(n *VNode) []*html.Node {
	if n == nil {
		return nil
	}

	if n.IsFragment() {
		var out []*html.Node
		if n.Content != "" {
			out = append(out, &html.Node{Type: html.TextNode, Data: n.Content})
		}
		for _, child := range n.Children {
			out = append(out, toHTML(child)...)
		}
		return out
	}

	tag := strings.ToLower(n.Tag)
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     htmlAttributes(n.Attributes),
	}

	if voidElements[tag] {
		return []*html.Node{el}
	}

	if n.Content != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
	}
	for _, child := range n.Children {
		for _, c := range toHTML(child) {
			el.AppendChild(c)
		}
	}
	return []*html.Node{el}
}

// htmlAttributes renders attributes in key order so output is stable
// across renders.
func htmlAttributes(attrs map[string]any) []html.Attribute {
	if len(attrs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		val, ok := attributeValue(attrs[k])
		if !ok {
			continue
		}
		out = append(out, html.Attribute{Key: k, Val: val})
	}
	return out
}

// attributeValue formats a single attribute. The second result is false
// when the attribute must be omitted (false booleans, nil, event handlers).
func attributeValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		return "", val
	case int:
		return strconv.Itoa(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	}

	if reflect.TypeOf(v).Kind() == reflect.Func {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Walk visits n and its descendants depth-first. Returning false from fn
// stops descent into that node's children.
func Walk(n *VNode, fn func(*VNode) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// FindByAttr returns the first node (depth-first) whose attribute key
// formats to value.
func FindByAttr(n *VNode, key, value string) *VNode {
	var found *VNode
	Walk(n, func(v *VNode) bool {
		if found != nil {
			return false
		}
		if raw, ok := v.Attr(key); ok {
			if s, ok := attributeValue(raw); ok && s == value {
				found = v
				return false
			}
		}
		return true
	})
	return found
}

// AttrValues collects, in document order, the formatted values of key
// on every node that carries it.
func AttrValues(n *VNode, key string) []string {
	var out []string
	Walk(n, func(v *VNode) bool {
		if raw, ok := v.Attr(key); ok {
			if s, ok := attributeValue(raw); ok {
				out = append(out, s)
			}
		}
		return true
	})
	return out
}
